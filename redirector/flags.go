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
	overrides  []func(*config.Redirector)
}

// apply sets the values given on the command line, zero values included
func (f *flagContainer) apply(cfg config.Redirector) config.Redirector {
	for _, override := range f.overrides {
		override(&cfg)
	}
	return cfg
}

func printUsage(set *flag.FlagSet) {
	_, filename := path.Split(os.Args[0])

	fmt.Println("rdrelay redirector usage: ")
	fmt.Println()
	fmt.Printf("   %s [options] URL\n", filename)
	fmt.Println()
	fmt.Println("options:")
	set.PrintDefaults()
	fmt.Println()
	fmt.Println("URL:")
	fmt.Println("  Location of the resource to relay. Ex: https://example.com/disk.img,")
	fmt.Println("  file:///data/disk.img, s3://bucket/disk.img?region=eu-west-1")
	fmt.Println("  Can be omitted when SOURCE_URL or the config file defines it.")
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
	set := flag.NewFlagSet("redirector", flag.ContinueOnError)
	set.Usage = func() {
		printUsage(set)
	}

	defaults := config.DefaultRedirector()

	var configPath string
	set.StringVar(&configPath, `config`, "", `Reads the configuration from the YAML file.`)

	var bindAddress string
	set.StringVar(&bindAddress, `bind`, defaults.BindAddress, `Binds the relay listener to the address.`)

	var statusAddress string
	set.StringVar(&statusAddress, `status`, "", `Serves the status endpoint on the address. Disabled when empty.`)

	var timeout config.DurationFlag
	set.Var(&timeout, `timeout`, `Fails a stalled read or write after the duration. 0 waits forever. Ex: 30s`)

	var chunkSize int
	set.IntVar(&chunkSize, `chunk-size`, defaults.ChunkSize, `Relays the stream in chunks of the size in bytes.`)

	if err := set.Parse(args); err != nil {
		return nil, err
	}

	if set.NArg() > 1 {
		set.Usage()
		return nil, fmt.Errorf("only one url can be relayed")
	}

	fc := &flagContainer{
		configPath: configPath,
		overrides:  make([]func(*config.Redirector), 0),
	}

	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bind":
			fc.overrides = append(fc.overrides, func(c *config.Redirector) { c.BindAddress = bindAddress })
		case "status":
			fc.overrides = append(fc.overrides, func(c *config.Redirector) { c.StatusAddress = statusAddress })
		case "timeout":
			fc.overrides = append(fc.overrides, func(c *config.Redirector) { c.Timeout = timeout.Duration })
		case "chunk-size":
			fc.overrides = append(fc.overrides, func(c *config.Redirector) { c.ChunkSize = chunkSize })
		}
	})

	if sourceURL := set.Arg(0); len(sourceURL) > 0 {
		fc.overrides = append(fc.overrides, func(c *config.Redirector) { c.SourceURL = sourceURL })
	}

	return fc, nil
}
