package main

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/smarty/happy/contracts"
)

const environmentPrefix = "happy"

func loadDefaults() (defaults contracts.Defaults, err error) {
	err = envconfig.Process(environmentPrefix, &defaults)
	return defaults, err
}
