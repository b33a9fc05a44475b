package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jonwraymond/eplanremote/eplan"
)

type fileConfig struct {
	Host           string `toml:"host"`
	Port           string `toml:"port"`
	ConnectTimeout string `toml:"connect_timeout"`
	ScriptDir      string `toml:"script_dir"`
	ResultDir      string `toml:"result_dir"`
	ScriptTimeout  string `toml:"script_timeout"`
}

// loadConfig reads the optional TOML config file. The returned port is
// empty when the file does not pin one, which leaves auto-detection on.
func loadConfig(path string) (eplan.Options, string, error) {
	var opts eplan.Options
	if path == "" {
		return opts, "", nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return eplan.Options{}, "", fmt.Errorf("load config: %w", err)
	}

	port := ""
	if meta.IsDefined("host") {
		opts.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		port = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ConnectTimeout))
		if err != nil {
			return eplan.Options{}, "", fmt.Errorf("parse connect_timeout: %w", err)
		}
		opts.ConnectTimeout = d
	}
	if meta.IsDefined("script_dir") {
		opts.ScriptDir = strings.TrimSpace(raw.ScriptDir)
	}
	if meta.IsDefined("result_dir") {
		opts.ResultDir = strings.TrimSpace(raw.ResultDir)
	}
	if meta.IsDefined("script_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ScriptTimeout))
		if err != nil {
			return eplan.Options{}, "", fmt.Errorf("parse script_timeout: %w", err)
		}
		opts.ScriptTimeout = d
	}

	return opts, port, nil
}
