package main

import (
	"crypto/sha256"
	"fmt"
	"log"
	"os"

	"github.com/klauspost/compress/flate"

	"github.com/smarty/happy/bundle"
	"github.com/smarty/happy/contracts"
	"github.com/smarty/happy/core"
	"github.com/smarty/happy/shell"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	if isSubCommand("store") {
		storeMain(os.Args[2:])
	} else if isSubCommand("install") {
		installMain(os.Args[2:])
	} else if isSubCommand("pack") {
		packMain(os.Args[2:])
	} else if isSubCommand("version") {
		versionMain()
	} else {
		storeMain(os.Args[1:])
	}
}

func isSubCommand(name string) bool {
	return len(os.Args) > 1 && os.Args[1] == name
}

func storeMain(args []string) {
	request, err := newConfigLoader().LoadStoreRequest(args)
	if err != nil {
		log.Fatal(err)
	}
	result, err := newInstaller().Store(request)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(result)
}

func installMain(args []string) {
	request, err := newConfigLoader().LoadInstallRequest(args)
	if err != nil {
		log.Fatal(err)
	}
	if err = newInstaller().Install(request); err != nil {
		log.Fatal(err)
	}
}

func packMain(args []string) {
	request, err := newConfigLoader().LoadPackRequest(args)
	if err != nil {
		log.Fatal(err)
	}
	codec := bundle.NewCodec()
	packer := core.NewWebAppPacker(
		shell.NewDiskFileSystem(),
		codec,
		codec,
		shell.NewDiskDirectoryArchiver(flate.BestCompression),
		sha256.New,
		log.Default(),
	)
	digest, err := packer.Pack(request)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(request.OutputPath + contracts.DigestDelimiter + digest)
}

func versionMain() {
	fmt.Printf("happy [%s]\n", ldflagsSoftwareVersion)
}

var ldflagsSoftwareVersion = "debug"

func newConfigLoader() *core.ConfigLoader {
	defaults, err := loadDefaults()
	if err != nil {
		log.Fatal(err)
	}
	return core.NewConfigLoader(shell.NewDiskFileSystem(), defaults, os.Stderr)
}

func newInstaller() *core.PackageInstaller {
	return core.NewPackageInstaller(shell.NewDiskFileSystem(), bundle.NewCodec(), sha256.New, log.Default())
}
