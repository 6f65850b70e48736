// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// stickfigctl is a minimal end-to-end demo of the kinematics core: it
// loads a world document, optionally overrides the solver defaults
// from a YAML document, runs one fabrik.Solve toward a target, and
// writes the resulting world document back out. It exercises every
// public package in the module without becoming a second core.
package main

import (
	"flag"
	"os"

	"github.com/stickfig/kinematics/fabrik"
	"github.com/stickfig/kinematics/internal/applog"
	"github.com/stickfig/kinematics/math2d"
	"github.com/stickfig/kinematics/persist"
	"github.com/stickfig/kinematics/skeleton"
	"gopkg.in/yaml.v2"
)

var log = applog.New("stickfigctl")

// solverConfig is the YAML document an -options file may use to
// override fabrik's defaults, one field per tunable rather than one
// flag per tunable.
type solverConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxAngDelta   float64 `yaml:"max_ang_delta"`
}

func main() {

	inPath := flag.String("in", "", "input world document (required)")
	outPath := flag.String("out", "", "output world document (required)")
	configPath := flag.String("options", "", "optional YAML solver-options override")
	effectorName := flag.String("effector", "", "node name to move toward -target-x/-target-y (required)")
	targetX := flag.Float64("target-x", 0, "target x coordinate")
	targetY := flag.Float64("target-y", 0, "target y coordinate")
	pinNames := flag.String("pins", "", "comma-separated node names to hold fixed while solving")
	flag.Parse()

	if *inPath == "" || *outPath == "" || *effectorName == "" {
		log.Error("missing required flag: -in, -out and -effector are all required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *configPath, *effectorName, *targetX, *targetY, *pinNames); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

func run(inPath, outPath, configPath, effectorName string, targetX, targetY float64, pinNames string) error {

	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	world, err := persist.Decode(data)
	if err != nil {
		return err
	}
	log.Info("loaded %s", inPath)

	opts := fabrik.DefaultOptions()
	if configPath != "" {
		opts, err = loadSolverConfig(configPath, opts)
		if err != nil {
			return err
		}
		log.Info("loaded solver options from %s", configPath)
	}

	effector, ok := findNode(world, effectorName)
	if !ok {
		return skeleton.NotFound
	}

	var pins []*skeleton.Node
	for _, name := range splitNonEmpty(pinNames) {
		n, ok := findNode(world, name)
		if !ok {
			return skeleton.NotFound
		}
		pins = append(pins, n)
	}

	target := fabrik.Target{Node: effector, Pos: math2d.Point{X: targetX, Y: targetY}}
	res := fabrik.Solve([]fabrik.Target{target}, pins, opts)
	if res.OK() {
		log.Info("solve result: %s", res)
	} else {
		log.Warn("solve result: %s", res)
	}

	out, err := persist.Encode(world)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	log.Info("wrote %s", outPath)
	return nil
}

func loadSolverConfig(path string, defaults fabrik.Options) (fabrik.Options, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, err
	}
	var cfg solverConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaults, err
	}

	opts := defaults
	if cfg.MaxIterations > 0 {
		opts.MaxIterations = cfg.MaxIterations
	}
	if cfg.Tolerance > 0 {
		opts.Tolerance = cfg.Tolerance
	}
	if cfg.MaxAngDelta > 0 {
		opts.MaxAngDelta = cfg.MaxAngDelta
	}
	return opts, nil
}

func findNode(world *skeleton.World, name string) (*skeleton.Node, bool) {

	for _, skel := range world.Skeletons() {
		if n, ok := skel.NodeByName(name); ok {
			return n, true
		}
	}
	return nil, false
}

func splitNonEmpty(s string) []string {

	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
