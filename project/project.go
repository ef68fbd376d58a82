// Package project loads the project file that describes one SDK family:
// who publishes it, where the source description and version number come
// from, and where each language's repository lives.
//
// Project files may be JSON, YAML or TOML. Every key can be overridden by an
// SDKGEN_ environment variable with dots replaced by underscores, for
// example SDKGEN_README_APIKEY.
package project

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/erraggy/sdkgen/internal/stringutil"
	"github.com/erraggy/sdkgen/sdkerrors"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "SDKGEN"

// Language keys used in the project file, in generation order.
const (
	TypeScript = "typescript"
	CSharp     = "csharp"
	Java       = "java"
	Ruby       = "ruby"
	Python     = "python"
)

// LanguageKeys lists every language key in generation order.
var LanguageKeys = []string{TypeScript, CSharp, Java, Ruby, Python}

// Project is the decoded project file.
type Project struct {
	CompanyName        string        `mapstructure:"companyName" json:"companyName"`
	AuthorName         string        `mapstructure:"authorName" json:"authorName"`
	AuthorEmail        string        `mapstructure:"authorEmail" json:"authorEmail"`
	ProjectName        string        `mapstructure:"projectName" json:"projectName"`
	CopyrightHolder    string        `mapstructure:"copyrightHolder" json:"copyrightHolder"`
	ProjectStartYear   int           `mapstructure:"projectStartYear" json:"projectStartYear"`
	SwaggerURL         string        `mapstructure:"swaggerUrl" json:"swaggerUrl"`
	Environments       []Environment `mapstructure:"environments" json:"environments"`
	SwaggerSchemaDir   string        `mapstructure:"swaggerSchemaFolder" json:"swaggerSchemaFolder"`
	Keywords           string        `mapstructure:"keywords" json:"keywords"`
	Description        string        `mapstructure:"description" json:"description"`
	AuthenticationHelp string        `mapstructure:"authenticationHelp" json:"authenticationHelp"`
	ReleaseNotes       string        `mapstructure:"releaseNotes" json:"releaseNotes"`

	// Readme is set when the SDKs link to a hosted documentation site.
	Readme *ReadmeSite `mapstructure:"readme" json:"readme,omitempty"`

	// VersionNumberURL is fetched and scanned with VersionNumberRegex; the
	// first capture group is the version token.
	VersionNumberURL   string `mapstructure:"versionNumberUrl" json:"versionNumberUrl"`
	VersionNumberRegex string `mapstructure:"versionNumberRegex" json:"versionNumberRegex"`

	// TemplateDir overrides the built-in boilerplate templates.
	TemplateDir string `mapstructure:"templateDir" json:"templateDir,omitempty"`

	TypeScript *Language `mapstructure:"typescript" json:"typescript,omitempty"`
	CSharp     *Language `mapstructure:"csharp" json:"csharp,omitempty"`
	Java       *Language `mapstructure:"java" json:"java,omitempty"`
	Ruby       *Language `mapstructure:"ruby" json:"ruby,omitempty"`
	Python     *Language `mapstructure:"python" json:"python,omitempty"`
}

// Environment is a named server the SDKs can connect to.
type Environment struct {
	Name    string `mapstructure:"name" json:"name"`
	URL     string `mapstructure:"url" json:"url"`
	Default bool   `mapstructure:"default" json:"default,omitempty"`
}

// ReadmeSite describes a hosted documentation site.
type ReadmeSite struct {
	URL    string `mapstructure:"url" json:"url"`
	APIKey string `mapstructure:"apiKey" json:"-"`
}

// Language holds the settings of one target language repository.
type Language struct {
	ModuleName    string `mapstructure:"moduleName" json:"moduleName"`
	ExtraCredit   string `mapstructure:"extraCredit" json:"extraCredit,omitempty"`
	Folder        string `mapstructure:"folder" json:"folder"`
	ClassName     string `mapstructure:"className" json:"className"`
	ResponseClass string `mapstructure:"responseClass" json:"responseClass"`
	Namespace     string `mapstructure:"namespace" json:"namespace"`
	GithubURL     string `mapstructure:"githubUrl" json:"githubUrl,omitempty"`
}

// Load reads a project file. The format follows the file extension.
func Load(path string) (*Project, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &sdkerrors.ConfigError{Option: "project", Value: path, Message: "failed to read project file", Cause: err}
	}
	return LoadWithViper(v)
}

// NewViper returns a viper instance with the environment overrides bound.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about.
	_ = v.BindEnv("readme.apikey")
	_ = v.BindEnv("versionnumberurl")
	_ = v.BindEnv("swaggerurl")
	return v
}

// LoadWithViper decodes a project from a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Project, error) {
	var p Project
	if err := v.Unmarshal(&p); err != nil {
		return nil, &sdkerrors.ConfigError{Option: "project", Message: "failed to decode project file", Cause: err}
	}
	if p.Readme != nil && p.Readme.URL == "" && p.Readme.APIKey == "" {
		p.Readme = nil
	}
	return &p, nil
}

// Validate checks the fields generation depends on.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ProjectName) == "" {
		return &sdkerrors.ConfigError{Option: "projectName", Message: "is required"}
	}
	if len(p.Languages()) == 0 {
		return &sdkerrors.ConfigError{Option: "languages", Message: "at least one language must be configured"}
	}
	for _, key := range LanguageKeys {
		lang := p.Language(key)
		if lang == nil {
			continue
		}
		required := map[string]string{
			"folder":        lang.Folder,
			"className":     lang.ClassName,
			"responseClass": lang.ResponseClass,
		}
		if key != TypeScript {
			required["namespace"] = lang.Namespace
		}
		if key == Java || key == Ruby {
			required["moduleName"] = lang.ModuleName
		}
		for _, name := range []string{"folder", "className", "responseClass", "namespace", "moduleName"} {
			value, checked := required[name]
			if checked && strings.TrimSpace(value) == "" {
				return &sdkerrors.ConfigError{Option: key + "." + name, Message: "is required"}
			}
		}
	}
	if p.AuthorEmail != "" && !stringutil.IsValidEmail(p.AuthorEmail) {
		return &sdkerrors.ConfigError{Option: "authorEmail", Value: p.AuthorEmail, Message: "is not a valid email address"}
	}
	if p.Readme != nil && p.Readme.URL == "" {
		return &sdkerrors.ConfigError{Option: "readme.url", Message: "is required when readme is configured"}
	}
	return nil
}

// Language returns the settings for a language key, or nil.
func (p *Project) Language(key string) *Language {
	switch key {
	case TypeScript:
		return p.TypeScript
	case CSharp:
		return p.CSharp
	case Java:
		return p.Java
	case Ruby:
		return p.Ruby
	case Python:
		return p.Python
	default:
		return nil
	}
}

// Languages returns the configured language keys in generation order.
func (p *Project) Languages() []string {
	var keys []string
	for _, key := range LanguageKeys {
		if p.Language(key) != nil {
			keys = append(keys, key)
		}
	}
	return keys
}

// DefaultEnvironment returns the environment flagged as default, else the
// first one. ok is false when no environments are configured.
func (p *Project) DefaultEnvironment() (env Environment, ok bool) {
	if len(p.Environments) == 0 {
		return Environment{}, false
	}
	for _, e := range p.Environments {
		if e.Default {
			return e, true
		}
	}
	return p.Environments[0], true
}

// Copyright returns "(c) {start}-{year} {holder}", collapsing the range when
// the project started this year.
func (p *Project) Copyright(year int) string {
	start := p.ProjectStartYear
	if start == 0 || start >= year {
		return fmt.Sprintf("(c) %d %s", year, p.CopyrightHolder)
	}
	return fmt.Sprintf("(c) %d-%d %s", start, year, p.CopyrightHolder)
}
