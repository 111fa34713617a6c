package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/doordash/apiclient-gen/pkg/codegen"
	"gopkg.in/yaml.v3"
)

var (
	flagConfigFile   string
	flagOutputDir    string
	flagTemplateDir  string
	flagAliasesFile  string
	flagBaseURL      string
	flagPrefixClass  string
	flagClassName    string
	flagBaseAPIClass string
	flagBaseModel    string
	flagPrintUsage   bool

	flagSnakeCaseField    bool
	flagIncludeDeprecated bool
)

func main() {
	flag.StringVar(&flagConfigFile, "config", "", "A YAML config file that controls apiclient-gen behavior.")
	flag.StringVar(&flagOutputDir, "o", "", "Directory to write the generated package into, current directory is default.")
	flag.StringVar(&flagTemplateDir, "templates", "", "Directory of templates overriding the built-in ones.")
	flag.StringVar(&flagAliasesFile, "aliases", "", "A flat JSON file mapping original field names to output names.")
	flag.StringVar(&flagBaseURL, "base-url", "", "Server URL baked into the generated client, overrides the document's servers entry.")
	flag.StringVar(&flagPrefixClass, "prefix", "", "Class name prefix for the generated client.")
	flag.StringVar(&flagClassName, "class-name", "", "Exact class name for the generated client, overrides -prefix.")
	flag.StringVar(&flagBaseAPIClass, "base-api-cls", "", "Dotted path of the base class the generated client extends.")
	flag.StringVar(&flagBaseModel, "base-cls", "", "Dotted path of the base class for generated data models.")
	flag.BoolVar(&flagSnakeCaseField, "snake-case-field", false, "Convert field names to snake_case.")
	flag.BoolVar(&flagIncludeDeprecated, "include-deprecated", false, "Generate stubs for deprecated operations too.")
	flag.BoolVar(&flagPrintUsage, "help", false, "Show this help and exit.")

	flag.Parse()

	if flagPrintUsage {
		flag.Usage()
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		errExit("Please specify a path to an OpenAPI 3.x document")
	} else if flag.NArg() > 1 {
		errExit("Only one OpenAPI document is accepted and it must be the last CLI argument")
	}

	specContents, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		errExit("Error reading document: %v", err)
	}

	cfg := codegen.NewDefaultConfiguration()
	if flagConfigFile != "" {
		cfgContents, err := os.ReadFile(flagConfigFile)
		if err != nil {
			errExit("Error reading config file: %v", err)
		}
		if err := yaml.Unmarshal(cfgContents, &cfg); err != nil {
			errExit("Error parsing config file: %v", err)
		}
		cfg = cfg.WithDefaults()
	}

	cfg = cfg.OverwriteWith(flagOverrides())

	if err := codegen.Generate(specContents, cfg); err != nil {
		errExit("Error generating client: %v", err)
	}
}

// flagOverrides folds the command line flags into a sparse configuration
// layered over the config file.
func flagOverrides() codegen.Configuration {
	overrides := codegen.Configuration{
		BaseClientClass: flagBaseAPIClass,
		BaseModelClass:  flagBaseModel,
		PrefixClass:     flagPrefixClass,
		ClassName:       flagClassName,
		BaseURL:         flagBaseURL,
		AliasesFile:     flagAliasesFile,
		TemplateDir:     flagTemplateDir,
		SnakeCaseField:  flagSnakeCaseField,
	}
	overrides.Output.Directory = flagOutputDir
	if flagIncludeDeprecated {
		skip := false
		overrides.SkipDeprecated = &skip
	}
	return overrides
}

func errExit(msg string, args ...any) {
	msg = msg + "\n"
	_, _ = fmt.Fprintf(os.Stderr, msg, args...)
	os.Exit(1)
}
