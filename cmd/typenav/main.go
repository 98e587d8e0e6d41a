// Package main implements the typenav CLI tool for exploring FHIR type
// hierarchies, choice elements, and property paths.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofhir/fhir/r4"
	"github.com/rs/zerolog"

	tn "github.com/gofhir/typenav"
	"github.com/gofhir/typenav/engine"
	"github.com/gofhir/typenav/loader"
)

const (
	version = "0.1.0"
	usage   = `typenav - FHIR Type Navigator

Usage:
  typenav [options] <Type.path>...

Examples:
  typenav Patient.name.given
  typenav Observation.valueQuantity.unit
  typenav -output json Patient.contact
  typenav -classify Patient string HumanName
  typenav -choices Observation.value
  typenav -defs ./definitions Patient.name

Options:
`
)

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	DefsDir     string
	Sentinel    string
	Output      OutputFormat
	Classify    bool
	Choices     bool
	Verbose     bool
	ShowVersion bool
	Help        bool
	Args        []string
}

// NavigationOutput represents the JSON output for one navigated path.
type NavigationOutput struct {
	Expression          string   `json:"expression"`
	Valid               bool     `json:"isValid"`
	Path                []string `json:"path,omitempty"`
	FinalType           string   `json:"finalType,omitempty"`
	AvailableProperties []string `json:"availableProperties,omitempty"`
	Errors              []string `json:"errors,omitempty"`
	Duration            string   `json:"duration"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("typenav v%s\n", version)
		os.Exit(0)
	}

	if config.Help || len(config.Args) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{Output: OutputText}
	var output string

	flag.StringVar(&config.DefsDir, "defs", "", "Directory of StructureDefinition JSON files (default: built-in fixtures)")
	flag.StringVar(&config.Sentinel, "sentinel", "Patient", "Type name probed during initialization")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.Classify, "classify", false, "Classify each argument as primitive, resource, or complex")
	flag.BoolVar(&config.Choices, "choices", false, "List choice members and property names for each argument")
	flag.BoolVar(&config.Verbose, "verbose", false, "Show detailed log output")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if strings.EqualFold(output, "json") {
		config.Output = OutputJSON
	}
	config.Args = flag.Args()

	return config
}

func run(config *Config) int {
	logger := zerolog.Nop()
	if config.Verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
	}

	provider, err := buildProvider(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	svc, err := engine.New(provider,
		tn.WithSentinelType(config.Sentinel),
		tn.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create service: %v\n", err)
		return 1
	}

	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize: %v\n", err)
		return 1
	}
	defer svc.Close()

	switch {
	case config.Classify:
		return runClassify(ctx, svc, config)
	case config.Choices:
		return runChoices(ctx, svc, config)
	default:
		return runNavigate(ctx, svc, config)
	}
}

// buildProvider loads StructureDefinitions from the -defs directory, or
// falls back to the built-in fixture set.
func buildProvider(config *Config) (*loader.InMemoryProvider, error) {
	if config.DefsDir == "" {
		return loader.NewFixtureProvider(), nil
	}

	matches, err := filepath.Glob(filepath.Join(config.DefsDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning '%s': %w", config.DefsDir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no definition files in '%s'", config.DefsDir)
	}

	provider := loader.NewInMemoryProvider()
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var sd r4.StructureDefinition
		if err := json.Unmarshal(data, &sd); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := provider.LoadR4(&sd); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return provider, nil
}

func runNavigate(ctx context.Context, svc *engine.Service, config *Config) int {
	hasErrors := false
	outputs := make([]NavigationOutput, 0, len(config.Args))

	for _, arg := range config.Args {
		segments := strings.Split(arg, ".")
		root, path := segments[0], segments[1:]

		start := time.Now()
		result, err := svc.NavigatePropertyPath(ctx, root, path)
		duration := time.Since(start)

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error navigating %s: %v\n", arg, err)
			hasErrors = true
			continue
		}

		output := NavigationOutput{
			Expression:          arg,
			Valid:               result.Valid,
			Path:                result.PathNames(),
			AvailableProperties: result.AvailableProperties,
			Errors:              result.Errors,
			Duration:            duration.Round(time.Microsecond).String(),
		}
		if result.FinalType != nil {
			output.FinalType = result.FinalType.Name
		}
		outputs = append(outputs, output)

		if !result.Valid {
			hasErrors = true
		}
		if config.Output == OutputText {
			printNavigationResult(arg, result, duration)
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func printNavigationResult(expr string, result *tn.NavigationResult, duration time.Duration) {
	status := "VALID"
	if !result.Valid {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", expr)
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Path: %s\n", strings.Join(result.PathNames(), " -> "))
	if result.FinalType != nil {
		fmt.Printf("Final type: %s\n", result.FinalType.Name)
	}
	fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))

	if len(result.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, msg := range result.Errors {
			fmt.Printf("  ERROR %s\n", msg)
		}
	}
	if !result.Valid && len(result.AvailableProperties) > 0 {
		fmt.Printf("\nAvailable properties: %s\n", strings.Join(result.AvailableProperties, ", "))
	}

	fmt.Println()
}

func runClassify(ctx context.Context, svc *engine.Service, config *Config) int {
	type classification struct {
		Type     string `json:"type"`
		Category string `json:"category"`
		Error    string `json:"error,omitempty"`
	}

	hasErrors := false
	outputs := make([]classification, 0, len(config.Args))

	for _, name := range config.Args {
		c, err := svc.TypeClassification(ctx, name)
		if err != nil {
			outputs = append(outputs, classification{Type: name, Error: err.Error()})
			hasErrors = true
			continue
		}
		outputs = append(outputs, classification{Type: name, Category: c.Category})
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	} else {
		for _, o := range outputs {
			if o.Error != "" {
				fmt.Printf("%s: error: %s\n", o.Type, o.Error)
				continue
			}
			fmt.Printf("%s: %s\n", o.Type, o.Category)
		}
	}

	if hasErrors {
		return 1
	}
	return 0
}

func runChoices(ctx context.Context, svc *engine.Service, config *Config) int {
	type choiceListing struct {
		Type          string   `json:"type"`
		Members       []string `json:"members,omitempty"`
		PropertyNames []string `json:"propertyNames,omitempty"`
		Error         string   `json:"error,omitempty"`
	}

	hasErrors := false
	outputs := make([]choiceListing, 0, len(config.Args))

	for _, name := range config.Args {
		info, err := svc.EnhancedTypeInfo(ctx, name)
		if err != nil {
			outputs = append(outputs, choiceListing{Type: name, Error: err.Error()})
			hasErrors = true
			continue
		}

		listing := choiceListing{Type: name}
		for _, member := range info.ChoiceTypes {
			listing.Members = append(listing.Members, member.Name)
		}
		if info.Type.Choice != nil {
			listing.PropertyNames = svc.ChoicePropertyNames(info.Type.Choice.BaseProperty(), info.ChoiceTypes)
		}
		outputs = append(outputs, listing)
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	} else {
		for _, o := range outputs {
			if o.Error != "" {
				fmt.Printf("%s: error: %s\n", o.Type, o.Error)
				continue
			}
			fmt.Printf("%s: members=[%s] properties=[%s]\n",
				o.Type, strings.Join(o.Members, ", "), strings.Join(o.PropertyNames, ", "))
		}
	}

	if hasErrors {
		return 1
	}
	return 0
}
