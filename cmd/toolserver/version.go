package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-toolserver/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommand struct{}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	data, err := version.JSON(ctx.execName, services...)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
