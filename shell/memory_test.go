package shell

import (
	"errors"
	"os"
	"testing"

	"github.com/smarty/assertions/should"
	"github.com/smarty/gunit"
)

func TestMemoryFixture(t *testing.T) {
	gunit.Run(new(MemoryFixture), t)
}

type MemoryFixture struct {
	*gunit.Fixture
	fileSystem *InMemoryFileSystem
}

func (this *MemoryFixture) Setup() {
	this.fileSystem = NewInMemoryFileSystem()
	this.So(this.fileSystem.MkdirAll("/root/sub"), should.BeNil)
}

func (this *MemoryFixture) TestWriteFileReadFile() {
	this.So(this.fileSystem.WriteFile("/root/file.txt", []byte("Hello World")), should.BeNil)

	raw, err := this.fileSystem.ReadFile("/root/file.txt")

	this.So(err, should.BeNil)
	this.So(raw, should.Resemble, []byte("Hello World"))
}

func (this *MemoryFixture) TestReadFileNonExistingFile() {
	raw, err := this.fileSystem.ReadFile("/root/file.txt")

	this.So(raw, should.BeNil)
	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
}

func (this *MemoryFixture) TestWriteIntoMissingDirectoryFails() {
	err := this.fileSystem.WriteFile("/missing/file.txt", []byte("Hello World"))

	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
}

func (this *MemoryFixture) TestCreate() {
	writer, err := this.fileSystem.Create("/root/sub/file.txt")
	this.So(err, should.BeNil)
	_, _ = writer.Write([]byte("Hello World"))
	_ = writer.Close()

	raw, _ := this.fileSystem.ReadFile("/root/sub/file.txt")
	this.So(raw, should.Resemble, []byte("Hello World"))
}

func (this *MemoryFixture) TestCreateReplacesExistingFileOnlyWhenClosed() {
	_ = this.fileSystem.WriteFile("/root/file.txt", []byte("old contents"))

	writer, _ := this.fileSystem.Create("/root/file.txt")
	_, _ = writer.Write([]byte("new"))

	raw, _ := this.fileSystem.ReadFile("/root/file.txt")
	this.So(raw, should.Resemble, []byte("old contents"))

	this.So(writer.Close(), should.BeNil)
	raw, _ = this.fileSystem.ReadFile("/root/file.txt")
	this.So(raw, should.Resemble, []byte("new"))
}

func (this *MemoryFixture) TestDiscardedFileIsNeverPublished() {
	writer, _ := this.fileSystem.Create("/root/file.txt")
	_, _ = writer.Write([]byte("partial"))

	this.So(writer.Discard(), should.BeNil)

	_, err := this.fileSystem.Stat("/root/file.txt")
	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
}

func (this *MemoryFixture) TestCreateIntoMissingDirectoryFails() {
	_, err := this.fileSystem.Create("/missing/file.txt")

	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
}

func (this *MemoryFixture) TestOpenReadsAtOffsets() {
	_ = this.fileSystem.WriteFile("/root/file.txt", []byte("Hello World"))

	reader, err := this.fileSystem.Open("/root/file.txt")
	this.So(err, should.BeNil)
	defer func() { _ = reader.Close() }()

	buffer := make([]byte, 5)
	count, err := reader.ReadAt(buffer, 6)
	this.So(err, should.BeNil)
	this.So(count, should.Equal, 5)
	this.So(string(buffer), should.Equal, "World")
	this.So(reader.Size(), should.Equal, 11)
}

func (this *MemoryFixture) TestMkdirAllIsIdempotentAndCreatesAncestors() {
	this.So(this.fileSystem.MkdirAll("/root/sub"), should.BeNil)

	info, err := this.fileSystem.Stat("/root")
	this.So(err, should.BeNil)
	this.So(info.IsDir(), should.BeTrue)
}

func (this *MemoryFixture) TestMkdirAllThroughFileFails() {
	_ = this.fileSystem.WriteFile("/root/file.txt", nil)

	err := this.fileSystem.MkdirAll("/root/file.txt/sub")

	this.So(errors.Is(err, os.ErrExist), should.BeTrue)
}

func (this *MemoryFixture) TestDelete() {
	_ = this.fileSystem.WriteFile("/root/file.txt", nil)

	this.So(this.fileSystem.Delete("/root/file.txt"), should.BeNil)

	_, err := this.fileSystem.Stat("/root/file.txt")
	this.So(errors.Is(err, os.ErrNotExist), should.BeTrue)
	this.So(errors.Is(this.fileSystem.Delete("/root/file.txt"), os.ErrNotExist), should.BeTrue)
}

func (this *MemoryFixture) TestInjectedErrors() {
	failure := errors.New("failure")
	this.fileSystem.ErrWriteFile["/root/file.txt"] = failure
	this.fileSystem.ErrMkdirAll["/root/other"] = failure
	this.fileSystem.ErrCreate["/root/created.txt"] = failure

	this.So(this.fileSystem.WriteFile("/root/file.txt", nil), should.Equal, failure)
	this.So(this.fileSystem.MkdirAll("/root/other"), should.Equal, failure)
	_, err := this.fileSystem.Create("/root/created.txt")
	this.So(err, should.Equal, failure)
}

func (this *MemoryFixture) TestListingOmitsDirectories() {
	_ = this.fileSystem.WriteFile("/root/sub/b.txt", []byte("bb"))
	_ = this.fileSystem.WriteFile("/root/a.txt", []byte("a"))

	listing := this.fileSystem.Listing()

	this.So(listing, should.HaveLength, 2)
	this.So(listing[0].Path(), should.Equal, "/root/a.txt")
	this.So(listing[1].Path(), should.Equal, "/root/sub/b.txt")
	this.So(listing[1].Size(), should.Equal, 2)
}
