// Command shaderdbgc rewrites a Shadertoy-dialect fragment shader to
// visualize the value computed on a given line.
//
// Usage:
//
//	shaderdbgc [options] <input.glsl>
//
// Examples:
//
//	shaderdbgc -line 12 shader.glsl                  # debug line 12
//	shaderdbgc -line 12 -preset presets.yaml -use spiral shader.glsl
//	shaderdbgc -postprocess -normalize soft shader.glsl
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/gogpu/shaderdbg"
	"github.com/gogpu/shaderdbg/preset"
	"github.com/gogpu/shaderdbg/rewrite"
)

var (
	output       = flag.String("o", "", "output file (default: stdout)")
	line         = flag.Int("line", 0, "debug line (1-based)")
	content      = flag.String("content", "", "expected text of the debug line, for staleness checking")
	paramsFlag   = flag.String("params", "", "comma-separated index=value overrides for synthesized call-site arguments")
	loopCapsFlag = flag.String("loopcaps", "", "comma-separated loopIndex=maxIterations overrides")
	presetFile   = flag.String("preset", "", "path to a preset library YAML file")
	presetName   = flag.String("use", "", "name of the preset to apply from -preset")
	postprocess  = flag.Bool("postprocess", false, "apply post-processing instead of line debugging")
	normalizeStr = flag.String("normalize", "off", "post-processing normalize mode: off, soft, abs")
	stepFlag     = flag.String("step", "", "post-processing step threshold")
	versionFlag  = flag.Bool("version", false, "print version")
)

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "dev"
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("shaderdbgc version %s\n", version())
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	var result string
	var ok bool
	if *postprocess {
		result, ok = runPostProcess(string(source))
	} else {
		result, ok = runDebug(string(source))
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: line is not debuggable, or no transform was requested")
		os.Exit(1)
	}

	writeOutput(result)
}

func runDebug(source string) (string, bool) {
	if *line <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -line is required")
		os.Exit(1)
	}

	customParams, err := parseStringMap(*paramsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -params: %v\n", err)
		os.Exit(1)
	}
	loopCaps, err := parseIntMap(*loopCapsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -loopcaps: %v\n", err)
		os.Exit(1)
	}

	if *presetFile != "" && *presetName != "" {
		applyPresetOverrides(source, customParams, loopCaps)
	}

	return shaderdbg.ModifyShaderForDebugging(source, *line, *content, customParams, loopCaps)
}

// applyPresetOverrides resolves the named preset's parameters against
// the function enclosing -line and merges them into customParams and
// loopCaps, with any overrides given directly on the command line
// taking precedence.
func applyPresetOverrides(source string, customParams map[int]string, loopCaps map[int]int) {
	lib, err := preset.Load(*presetFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading preset file: %v\n", err)
		os.Exit(1)
	}
	p, ok := lib[*presetName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: preset %q not found in %s\n", *presetName, *presetFile)
		os.Exit(1)
	}

	ctx, err := shaderdbg.ExtractFunctionContext(source, *line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving function context: %v\n", err)
		os.Exit(1)
	}

	byName := make(map[string]int, len(ctx.Parameters))
	for i, param := range ctx.Parameters {
		byName[param.Name] = i
	}
	for name, value := range p.Params {
		if idx, ok := byName[name]; ok {
			if _, already := customParams[idx]; !already {
				customParams[idx] = value
			}
		}
	}
	for idx, limit := range p.LoopCaps {
		if _, already := loopCaps[idx]; !already {
			loopCaps[idx] = limit
		}
	}
}

func runPostProcess(source string) (string, bool) {
	var normalize rewrite.Normalize
	switch *normalizeStr {
	case "off":
		normalize = rewrite.NormalizeOff
	case "soft":
		normalize = rewrite.NormalizeSoft
	case "abs":
		normalize = rewrite.NormalizeAbs
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown -normalize value %q\n", *normalizeStr)
		os.Exit(1)
	}

	var threshold *float64
	if *stepFlag != "" {
		v, err := strconv.ParseFloat(*stepFlag, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -step: %v\n", err)
			os.Exit(1)
		}
		threshold = &v
	}

	return shaderdbg.ApplyFullShaderPostProcessing(source, normalize, threshold)
}

func parseStringMap(s string) (map[int]string, error) {
	out := map[int]string{}
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, err := splitKV(pair)
		if err != nil {
			return nil, err
		}
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", k, err)
		}
		out[idx] = v
	}
	return out, nil
}

func parseIntMap(s string) (map[int]int, error) {
	out := map[int]int{}
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, err := splitKV(pair)
		if err != nil {
			return nil, err
		}
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", k, err)
		}
		val, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad value %q: %w", v, err)
		}
		out[idx] = val
	}
	return out, nil
}

func splitKV(pair string) (string, string, error) {
	parts := strings.SplitN(pair, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected key=value, got %q", pair)
	}
	return parts[0], parts[1], nil
}

func writeOutput(result string) {
	if *output != "" {
		if err := os.WriteFile(*output, []byte(result), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(result), *output)
		return
	}
	fmt.Print(result)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: shaderdbgc [options] <input.glsl>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  shaderdbgc -line 12 shader.glsl               Debug line 12 to stdout\n")
	fmt.Fprintf(os.Stderr, "  shaderdbgc -postprocess -normalize soft in.glsl   Normalize fragColor\n")
}
