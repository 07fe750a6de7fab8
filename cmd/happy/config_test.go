package main

import (
	"os"
	"testing"

	"github.com/smarty/assertions/should"
	"github.com/smarty/gunit"

	"github.com/smarty/happy/contracts"
)

func TestDefaultsFixture(t *testing.T) {
	gunit.Run(new(DefaultsFixture), t)
}

type DefaultsFixture struct {
	*gunit.Fixture
}

var environmentKeys = []string{"HAPPY_HAPPS_DIR", "HAPPY_UIS_DIR", "HAPPY_UI_DIR"}

func (this *DefaultsFixture) Setup() {
	for _, key := range environmentKeys {
		_ = os.Unsetenv(key)
	}
}

func (this *DefaultsFixture) Teardown() {
	this.Setup()
}

func (this *DefaultsFixture) TestBuiltInDefaultsAndEnvironmentOverrides() {
	defaults, err := loadDefaults()

	this.So(err, should.BeNil)
	this.So(defaults, should.Resemble, contracts.Defaults{
		HappsDirectory: "happs",
		UIsDirectory:   "uis",
		UIDirectory:    "ui",
	})

	_ = os.Setenv("HAPPY_HAPPS_DIR", "/var/lib/happs")
	_ = os.Setenv("HAPPY_UIS_DIR", "/var/lib/uis")
	_ = os.Setenv("HAPPY_UI_DIR", "/srv/ui")

	defaults, err = loadDefaults()

	this.So(err, should.BeNil)
	this.So(defaults, should.Resemble, contracts.Defaults{
		HappsDirectory: "/var/lib/happs",
		UIsDirectory:   "/var/lib/uis",
		UIDirectory:    "/srv/ui",
	})
}
