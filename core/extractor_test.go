package core

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/smarty/assertions/should"
	"github.com/smarty/gunit"

	"github.com/smarty/happy/contracts"
	"github.com/smarty/happy/shell"
)

func TestArchiveExtractorFixture(t *testing.T) {
	gunit.Run(new(ArchiveExtractorFixture), t)
}

type ArchiveExtractorFixture struct {
	*gunit.Fixture

	extractor  *ArchiveExtractor
	fileSystem *shell.InMemoryFileSystem
	logs       *bytes.Buffer
}

func (this *ArchiveExtractorFixture) Setup() {
	this.logs = new(bytes.Buffer)
	this.fileSystem = shell.NewInMemoryFileSystem()
	_ = this.fileSystem.MkdirAll("/ui")
	this.extractor = NewArchiveExtractor(this.fileSystem, sha256.New, log.New(this.logs, "", 0))
}

func (this *ArchiveExtractorFixture) extract(archive []byte) ([]contracts.ArchiveItem, error) {
	return this.extractor.Extract(bytes.NewReader(archive), "/ui")
}

func (this *ArchiveExtractorFixture) read(path string) string {
	raw, err := this.fileSystem.ReadFile(path)
	this.So(err, should.BeNil)
	return string(raw)
}

func (this *ArchiveExtractorFixture) TestFilesAndDirectoriesExtractedInOrder() {
	listing, err := this.extract(buildZip(
		zipEntry{name: "index.html", content: "<html></html>"},
		zipEntry{name: "assets/"},
		zipEntry{name: "assets/app.js", content: "console.log(1)"},
		zipEntry{name: "nested/deeper/style.css", content: "body{}"},
	))

	this.So(err, should.BeNil)
	this.So(listing, should.Resemble, []contracts.ArchiveItem{
		{Path: "index.html", Size: 13, Checksum: checksum("<html></html>")},
		{Path: "assets", Directory: true},
		{Path: "assets/app.js", Size: 14, Checksum: checksum("console.log(1)")},
		{Path: "nested/deeper/style.css", Size: 6, Checksum: checksum("body{}")},
	})
	this.So(this.read("/ui/index.html"), should.Equal, "<html></html>")
	this.So(this.read("/ui/assets/app.js"), should.Equal, "console.log(1)")
	this.So(this.read("/ui/nested/deeper/style.css"), should.Equal, "body{}")
	this.So(this.logs.String(), should.ContainSubstring, "[INFO] Extracting into [/ui]: 33 B written")
}

func (this *ArchiveExtractorFixture) TestEmptyArchive() {
	listing, err := this.extract(buildZip())

	this.So(err, should.BeNil)
	this.So(listing, should.BeEmpty)
	this.So(this.fileSystem.Listing(), should.BeEmpty)
}

func (this *ArchiveExtractorFixture) TestUnsafeEntriesSkipped() {
	listing, err := this.extract(buildZip(
		zipEntry{name: "../evil", content: "evil"},
		zipEntry{name: "/etc/passwd", content: "evil"},
		zipEntry{name: "assets/../../evil", content: "evil"},
		zipEntry{name: "ok.txt", content: "ok"},
	))

	this.So(err, should.BeNil)
	this.So(listing, should.Resemble, []contracts.ArchiveItem{{Path: "ok.txt", Size: 2, Checksum: checksum("ok")}})
	this.So(this.fileSystem.Listing(), should.HaveLength, 1)
	this.So(this.logs.String(), should.ContainSubstring, `[WARN] Skipping archive entry with unsafe name: "../evil"`)
}

func (this *ArchiveExtractorFixture) TestLaterEntryOverwritesEarlierOne() {
	listing, err := this.extract(buildZip(
		zipEntry{name: "index.html", content: "first"},
		zipEntry{name: "index.html", content: "2nd"},
	))

	this.So(err, should.BeNil)
	this.So(listing, should.Resemble, []contracts.ArchiveItem{{Path: "index.html", Size: 3, Checksum: checksum("2nd")}})
	this.So(this.read("/ui/index.html"), should.Equal, "2nd")
}

func (this *ArchiveExtractorFixture) TestAliasedNamesShareOneListingItem() {
	listing, err := this.extract(buildZip(
		zipEntry{name: "index.html", content: "x"},
		zipEntry{name: "assets/app.js", content: "console.log(1)"},
		zipEntry{name: "./index.html", content: "yy"},
	))

	this.So(err, should.BeNil)
	this.So(listing, should.Resemble, []contracts.ArchiveItem{
		{Path: "index.html", Size: 2, Checksum: checksum("yy")},
		{Path: "assets/app.js", Size: 14, Checksum: checksum("console.log(1)")},
	})
	this.So(this.read("/ui/index.html"), should.Equal, "yy")
}

func (this *ArchiveExtractorFixture) TestCorruptArchive() {
	listing, err := this.extract([]byte("not a zip archive"))

	this.So(listing, should.BeEmpty)
	this.So(err, should.Wrap, contracts.ErrExtraction)
}

func (this *ArchiveExtractorFixture) TestCreateFailureIsAnIOError() {
	failure := errors.New("disk full")
	this.fileSystem.ErrCreate["/ui/b.txt"] = failure

	listing, err := this.extract(buildZip(
		zipEntry{name: "a.txt", content: "a"},
		zipEntry{name: "b.txt", content: "b"},
		zipEntry{name: "c.txt", content: "c"},
	))

	this.So(err, should.Wrap, contracts.ErrIO)
	this.So(err, should.Wrap, failure)
	this.So(listing, should.HaveLength, 1)
	this.So(this.read("/ui/a.txt"), should.Equal, "a")
	_, statErr := this.fileSystem.Stat("/ui/c.txt")
	this.So(errors.Is(statErr, os.ErrNotExist), should.BeTrue)
}

func (this *ArchiveExtractorFixture) TestDirectoryFailureIsAnIOError() {
	failure := errors.New("read-only")
	this.fileSystem.ErrMkdirAll["/ui/assets"] = failure

	_, err := this.extract(buildZip(zipEntry{name: "assets/app.js", content: "x"}))

	this.So(err, should.Wrap, contracts.ErrIO)
	this.So(err, should.Wrap, failure)
}
