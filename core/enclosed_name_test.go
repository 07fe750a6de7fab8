package core

import (
	"path/filepath"
	"testing"

	"github.com/smarty/assertions/should"
	"github.com/smarty/gunit"
)

func TestEnclosedNameFixture(t *testing.T) {
	gunit.Run(new(EnclosedNameFixture), t)
}

type EnclosedNameFixture struct {
	*gunit.Fixture
}

func (this *EnclosedNameFixture) assertEnclosed(name, expected string) {
	actual, ok := EnclosedName(name)
	this.So(ok, should.BeTrue)
	this.So(actual, should.Equal, filepath.FromSlash(expected))
}

func (this *EnclosedNameFixture) assertRejected(name string) {
	actual, ok := EnclosedName(name)
	this.So(ok, should.BeFalse)
	this.So(actual, should.BeEmpty)
}

func (this *EnclosedNameFixture) TestOrdinaryNames() {
	this.assertEnclosed("index.html", "index.html")
	this.assertEnclosed("assets/app.js", "assets/app.js")
	this.assertEnclosed("assets/", "assets")
	this.assertEnclosed("./assets/./app.js", "assets/app.js")
}

func (this *EnclosedNameFixture) TestParentComponentsThatStayInside() {
	this.assertEnclosed("assets/../index.html", "index.html")
	this.assertEnclosed("a/b/../../c", "c")
}

func (this *EnclosedNameFixture) TestBackslashesAreSeparators() {
	this.assertEnclosed(`assets\app.js`, "assets/app.js")
	this.assertRejected(`..\evil`)
	this.assertRejected(`\evil`)
}

func (this *EnclosedNameFixture) TestEscapingNamesRejected() {
	this.assertRejected("../evil")
	this.assertRejected("assets/../../evil")
	this.assertRejected("..")
}

func (this *EnclosedNameFixture) TestAbsoluteNamesRejected() {
	this.assertRejected("/etc/passwd")
	this.assertRejected("C:/windows/system32")
	this.assertRejected(`c:\evil`)
	this.assertRejected("C:")
}

func (this *EnclosedNameFixture) TestDegenerateNamesRejected() {
	this.assertRejected("")
	this.assertRejected(".")
	this.assertRejected("./")
	this.assertRejected("evil\x00.txt")
}

func (this *EnclosedNameFixture) TestColonInOrdinaryNameAllowed() {
	this.assertEnclosed("assets/a:b.txt", "assets/a:b.txt")
	this.assertEnclosed("ab:/c", "ab:/c")
}
