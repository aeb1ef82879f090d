// Package config implements the one-shot, process-wide configuration
// call: network selection, minimum accepted peer protocol version,
// application name, and supported-services bitfield. It must be
// called exactly once, before any peer or dispatcher is constructed.
package config

import (
	"os"
	"sync"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/satoshinet/p2pcore/chaincfg"
	"github.com/satoshinet/p2pcore/wire"
	"github.com/satoshinet/p2pcore/wireerr"
)

// Options is the flag- and YAML-addressable configuration surface.
// Flags take precedence over a loaded YAML file, which takes
// precedence over the defaults below.
type Options struct {
	ConfigFile string `short:"C" long:"configfile" description:"path to a YAML configuration file" yaml:"-"`

	Network string `long:"network" description:"mainnet or testnet" default:"mainnet" yaml:"network"`

	MinPeerProtocolVersion uint32 `long:"minpeerprotocolversion" description:"lowest peer protocol version accepted before disconnect" yaml:"minpeerprotocolversion"`

	AppName string `long:"appname" description:"application name, embedded in the version message's user agent" default:"p2pcore" yaml:"appname"`

	// Services defaults to 1 (wire.SFNodeNetwork): a peer that can't
	// offer the full chain isn't usable as a handshake counterparty.
	Services uint64 `long:"services" description:"supported-services bitfield advertised in version/addr" default:"1" yaml:"services"`
}

// Config is the resolved, immutable configuration a dispatcher reads
// from for the rest of the process's life.
type Config struct {
	Params                 *chaincfg.Params
	MinPeerProtocolVersion uint32
	UserAgent              string
	Services               wire.ServiceFlag
}

// libraryTag identifies this library in the chained user-agent form
// "/<appname>/<library>/", alongside whatever application embeds it.
const libraryTag = "p2pcore:0.1.0"

var (
	configureOnce sync.Once
	configured    *Config
)

// Load parses args with go-flags, merges in --configfile's YAML
// contents if given, resolves the network name to chaincfg.Params, and
// stores the result as this process's configuration. It fails with
// KindConfiguration if called more than once.
func Load(args []string) (*Config, error) {
	var cfg *Config
	var err error
	ran := false

	configureOnce.Do(func() {
		ran = true
		cfg, err = load(args)
		if err == nil {
			configured = cfg
		}
	})

	if !ran {
		return nil, wireerr.New(wireerr.KindConfiguration, "configuration already loaded for this process")
	}
	return cfg, err
}

// Current returns the configuration Load produced, or false if Load
// has not yet succeeded.
func Current() (*Config, bool) {
	if configured == nil {
		return nil, false
	}
	return configured, true
}

func load(args []string) (*Config, error) {
	opts := Options{}
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, wireerr.Newf(wireerr.KindConfiguration, "parsing flags: %v", err)
	}

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return nil, wireerr.Newf(wireerr.KindConfiguration, "reading config file: %v", err)
		}
		fileOpts := opts
		if err := yaml.Unmarshal(data, &fileOpts); err != nil {
			return nil, wireerr.Newf(wireerr.KindConfiguration, "parsing config file: %v", err)
		}
		opts = fileOpts
		// Flags explicitly given on the command line still win over the
		// file: re-apply them on top of whatever the file set.
		if _, err := parser.ParseArgs(args); err != nil {
			return nil, wireerr.Newf(wireerr.KindConfiguration, "re-applying flags over config file: %v", err)
		}
	}

	var params *chaincfg.Params
	switch opts.Network {
	case "mainnet":
		params = &chaincfg.MainNetParams
	case "testnet":
		params = &chaincfg.TestNetParams
	default:
		return nil, wireerr.Newf(wireerr.KindConfiguration, "unknown network %q, want mainnet or testnet", opts.Network)
	}

	minVer := opts.MinPeerProtocolVersion
	if minVer == 0 {
		minVer = params.MinPeerProtocolVersion
	}

	return &Config{
		Params:                 params,
		MinPeerProtocolVersion: minVer,
		UserAgent:              "/" + opts.AppName + "/" + libraryTag + "/",
		Services:               wire.ServiceFlag(opts.Services),
	}, nil
}
