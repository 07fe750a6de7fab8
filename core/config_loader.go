package core

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/smarty/happy/contracts"
)

var (
	errPackageArgument      = errors.New("exactly one package path is required")
	errUnexpectedArguments  = errors.New("unexpected positional arguments")
	errUnsupportedExtension = errors.New("package path must end in " + contracts.HappExtension + " or " + contracts.WebHappExtension)
	errMissingFlag          = errors.New("missing required flag")
	errNotADirectory        = errors.New("not a directory")
)

// ConfigLoader turns sub-command arguments into requests, layering flags
// over the environment defaults and checking that named inputs exist.
type ConfigLoader struct {
	fileSystem contracts.FileChecker
	defaults   contracts.Defaults
	stderr     io.Writer
}

func NewConfigLoader(fileSystem contracts.FileChecker, defaults contracts.Defaults, stderr io.Writer) *ConfigLoader {
	return &ConfigLoader{fileSystem: fileSystem, defaults: defaults, stderr: stderr}
}

func (this *ConfigLoader) LoadStoreRequest(args []string) (request contracts.StoreRequest, err error) {
	flags := this.newFlagSet("store", "[-happs-dir DIR] [-uis-dir DIR] <path.happ|path.webhapp>",
		"Stores the package under content-derived names and prints <happ_path>$<app_hash>[$<ui_hash>$<webhapp_hash>].")
	flags.StringVar(&request.HappsDirectory,
		"happs-dir",
		this.defaults.HappsDirectory,
		"Directory that receives the content-addressed .happ file.",
	)
	flags.StringVar(&request.UIsDirectory,
		"uis-dir",
		this.defaults.UIsDirectory,
		"Directory that receives <ui_hash>/assets for web-wrapped packages.",
	)
	flags.BoolVar(&request.VerifyContents,
		"verify-contents",
		false,
		"When set, re-read every extracted UI file and compare its digest with the archive entry.",
	)
	if err = flags.Parse(args); err != nil {
		return contracts.StoreRequest{}, err
	}
	request.PackagePath, err = this.packagePath(flags.Args())
	if err != nil {
		return contracts.StoreRequest{}, err
	}
	return request, nil
}

func (this *ConfigLoader) LoadInstallRequest(args []string) (request contracts.InstallRequest, err error) {
	flags := this.newFlagSet("install", "[-app-id ID] [-happs-dir DIR] [-ui-dir DIR] <path.webhapp>",
		"Installs a web-wrapped package as <happs-dir>/<app-id>.happ with its UI unpacked into ui-dir.")
	flags.StringVar(&request.AppID,
		"app-id",
		"",
		"Identifier of the installed app. Defaults to the package file name without its extension.",
	)
	flags.StringVar(&request.HappsDirectory,
		"happs-dir",
		this.defaults.HappsDirectory,
		"Directory that receives <app-id>.happ.",
	)
	flags.StringVar(&request.UIDirectory,
		"ui-dir",
		this.defaults.UIDirectory,
		"Directory that receives the unpacked UI.",
	)
	flags.BoolVar(&request.VerifyContents,
		"verify-contents",
		false,
		"When set, re-read every extracted UI file and compare its digest with the archive entry.",
	)
	if err = flags.Parse(args); err != nil {
		return contracts.InstallRequest{}, err
	}
	request.PackagePath, err = this.packagePath(flags.Args())
	if err != nil {
		return contracts.InstallRequest{}, err
	}
	if request.AppID == "" {
		base := filepath.Base(request.PackagePath)
		request.AppID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return request, nil
}

func (this *ConfigLoader) LoadPackRequest(args []string) (request contracts.PackRequest, err error) {
	flags := this.newFlagSet("pack", "-happ FILE -ui DIR [-o FILE] [-name NAME]",
		"Wraps a .happ file and a UI directory into a .webhapp package and prints <webhapp_path>$<webhapp_hash>.")
	flags.StringVar(&request.HappPath, "happ", "", "The .happ file to wrap (required).")
	flags.StringVar(&request.UIDirectory, "ui", "", "The UI directory to zip into the package (required).")
	flags.StringVar(&request.OutputPath, "o", "", "Output path. Defaults to the -happ path with a .webhapp extension.")
	flags.StringVar(&request.Name, "name", "", "Name of the web app. Defaults to the name of the app.")
	if err = flags.Parse(args); err != nil {
		return contracts.PackRequest{}, err
	}
	if flags.NArg() > 0 {
		return contracts.PackRequest{}, fmt.Errorf("%w: %v", errUnexpectedArguments, flags.Args())
	}
	if request.HappPath == "" {
		return contracts.PackRequest{}, fmt.Errorf("%w: -happ", errMissingFlag)
	}
	if request.UIDirectory == "" {
		return contracts.PackRequest{}, fmt.Errorf("%w: -ui", errMissingFlag)
	}
	if !strings.HasSuffix(request.HappPath, contracts.HappExtension) {
		return contracts.PackRequest{}, fmt.Errorf("%w: %s", errUnsupportedExtension, request.HappPath)
	}
	if _, err = this.fileSystem.Stat(request.HappPath); err != nil {
		return contracts.PackRequest{}, err
	}
	info, err := this.fileSystem.Stat(request.UIDirectory)
	if err != nil {
		return contracts.PackRequest{}, err
	}
	if !info.IsDir() {
		return contracts.PackRequest{}, fmt.Errorf("%w: %s", errNotADirectory, request.UIDirectory)
	}
	if request.OutputPath == "" {
		request.OutputPath = strings.TrimSuffix(request.HappPath, contracts.HappExtension)
	}
	if !strings.HasSuffix(request.OutputPath, contracts.WebHappExtension) {
		request.OutputPath += contracts.WebHappExtension
	}
	return request, nil
}

func (this *ConfigLoader) newFlagSet(name, usage, description string) *flag.FlagSet {
	flags := flag.NewFlagSet("happy "+name, flag.ContinueOnError)
	flags.SetOutput(this.stderr)
	flags.Usage = func() {
		_, _ = fmt.Fprintf(this.stderr, "Usage: happy %s %s\n\n  %s\n\n", name, usage, description)
		flags.PrintDefaults()
	}
	return flags
}

func (this *ConfigLoader) packagePath(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w (got %d)", errPackageArgument, len(args))
	}
	path := args[0]
	if !strings.HasSuffix(path, contracts.HappExtension) && !strings.HasSuffix(path, contracts.WebHappExtension) {
		return "", fmt.Errorf("%w: %s", errUnsupportedExtension, path)
	}
	if _, err := this.fileSystem.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}
