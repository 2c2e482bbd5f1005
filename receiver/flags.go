package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/freakmaxi/rdrelay/basics/config"
)

type flagContainer struct {
	configPath string
	overrides  []func(*config.Receiver)
}

// apply sets the values given on the command line, zero values included
func (f *flagContainer) apply(cfg config.Receiver) config.Receiver {
	for _, override := range f.overrides {
		override(&cfg)
	}
	return cfg
}

func printUsage(set *flag.FlagSet) {
	_, filename := path.Split(os.Args[0])

	fmt.Println("rdrelay receiver usage: ")
	fmt.Println()
	fmt.Printf("   %s [options] ADDRESS\n", filename)
	fmt.Println()
	fmt.Println("options:")
	set.PrintDefaults()
	fmt.Println()
	fmt.Println("ADDRESS:")
	fmt.Println("  Redirector end point. The port is 4444 when it is not given. Ex: 10.0.0.2:4444")
	fmt.Println("  Can be omitted when REDIRECTOR_ADDRESS or the config file defines it.")
	fmt.Println()
}

func defineFlags() *flagContainer {
	fc, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}
	return fc
}

// parseFlags parses the command line, only the flags given explicitly override the configuration
func parseFlags(args []string) (*flagContainer, error) {
	set := flag.NewFlagSet("receiver", flag.ContinueOnError)
	set.Usage = func() {
		printUsage(set)
	}

	defaults := config.DefaultReceiver()

	var configPath string
	set.StringVar(&configPath, `config`, "", `Reads the configuration from the YAML file.`)

	var directory string
	set.StringVar(&directory, `directory`, defaults.Directory, `Writes the resource and the resume record into the directory.`)

	var timeout config.DurationFlag
	set.Var(&timeout, `timeout`, `Fails a stalled read or write after the duration. 0 waits forever. Ex: 30s`)

	var chunkSize int
	set.IntVar(&chunkSize, `chunk-size`, defaults.ChunkSize, `Reads the stream in chunks of the size in bytes.`)

	var syncWrites bool
	set.BoolVar(&syncWrites, `sync`, false, `Flushes the resource and the resume record to disk after every chunk.`)

	if err := set.Parse(args); err != nil {
		return nil, err
	}

	if set.NArg() > 1 {
		set.Usage()
		return nil, fmt.Errorf("only one redirector address can be used")
	}

	fc := &flagContainer{
		configPath: configPath,
		overrides:  make([]func(*config.Receiver), 0),
	}

	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "directory":
			fc.overrides = append(fc.overrides, func(c *config.Receiver) { c.Directory = directory })
		case "timeout":
			fc.overrides = append(fc.overrides, func(c *config.Receiver) { c.Timeout = timeout.Duration })
		case "chunk-size":
			fc.overrides = append(fc.overrides, func(c *config.Receiver) { c.ChunkSize = chunkSize })
		case "sync":
			fc.overrides = append(fc.overrides, func(c *config.Receiver) { c.SyncWrites = syncWrites })
		}
	})

	if address := set.Arg(0); len(address) > 0 {
		fc.overrides = append(fc.overrides, func(c *config.Receiver) { c.RedirectorAddress = address })
	}

	return fc, nil
}
