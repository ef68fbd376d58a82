// Package source applies project fix-ups to a decoded source description
// before the model is extracted, and writes the prepared snapshot.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/fileutil"
	"github.com/erraggy/sdkgen/internal/nodeutil"
	"github.com/erraggy/sdkgen/internal/pathutil"
	"github.com/erraggy/sdkgen/project"
)

// linkedResponseCodes are the success codes whose schema gets a data
// definition link, in lookup order.
var linkedResponseCodes = []string{"200", "201"}

// unlinkedModel never gets a data definition link.
const unlinkedModel = "ActionResultModel"

// Prepare edits doc in place:
//   - info.title becomes the project name and info.version the short version
//   - servers are replaced with the project environments, if any
//   - the oauth2 security scheme is removed
//   - with a readme site configured, operation descriptions get a
//     "### Data Definition" link to the model they return
func Prepare(doc *yaml.Node, p *project.Project, version apimodel.Version) error {
	root := nodeutil.Resolve(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return fmt.Errorf("source: document root is not a mapping")
	}

	info := nodeutil.Lookup(root, "info")
	if info == nil {
		info = nodeutil.MappingNode()
		nodeutil.Set(root, "info", info)
	}
	nodeutil.Set(info, "title", nodeutil.StringNode(p.ProjectName))
	if version.Short != "" {
		nodeutil.Set(info, "version", nodeutil.StringNode(version.Short))
	}

	if len(p.Environments) > 0 {
		servers := nodeutil.SequenceNode()
		for _, env := range p.Environments {
			server := nodeutil.MappingNode()
			nodeutil.Set(server, "url", nodeutil.StringNode(env.URL))
			servers.Content = append(servers.Content, server)
		}
		nodeutil.Set(root, "servers", servers)
	}

	nodeutil.Delete(nodeutil.Lookup(root, "components", "securitySchemes"), "oauth2")

	if p.Readme != nil && p.Readme.URL != "" {
		addDataDefinitionLinks(root, strings.TrimSuffix(p.Readme.URL, "/"))
	}
	return nil
}

func addDataDefinitionLinks(root *yaml.Node, siteURL string) {
	for _, pathItem := range nodeutil.Pairs(nodeutil.Lookup(root, "paths")) {
		for _, op := range nodeutil.Pairs(pathItem.Value) {
			if !nodeutil.IsMapping(op.Value) {
				continue
			}
			model := returnedModel(op.Value)
			if model == "" || model == unlinkedModel {
				continue
			}
			desc := nodeutil.Lookup(op.Value, "description")
			if desc == nil || desc.Kind != yaml.ScalarNode {
				continue
			}
			desc.Value += fmt.Sprintf("\n\n### Data Definition\n\nSee [%s](%s/docs/%s) for the complete data definition.",
				model, siteURL, strings.ToLower(model))
			desc.Tag = "!!str"
			desc.Style = yaml.DoubleQuotedStyle
		}
	}
}

// returnedModel finds the model a 200/201 JSON response refers to, directly
// or as array items, with any FetchResult suffix removed.
func returnedModel(op *yaml.Node) string {
	var ref string
	for _, items := range []bool{false, true} {
		for _, code := range linkedResponseCodes {
			schema := nodeutil.Lookup(op, "responses", code, "content", "application/json", "schema")
			if items {
				schema = nodeutil.Lookup(schema, "items")
			}
			if ref = nodeutil.String(schema, "$ref"); ref != "" {
				break
			}
		}
		if ref != "" {
			break
		}
	}
	if ref == "" {
		return ""
	}
	name := ref[strings.LastIndex(ref, "/")+1:]
	return strings.ReplaceAll(name, "FetchResult", "")
}

// SnapshotPath returns where the prepared document for version is stored.
func SnapshotPath(dir string, version apimodel.Version) string {
	return filepath.Join(dir, "swagger-"+version.Short+".json")
}

// WriteSnapshot stores the prepared document as indented JSON in dir when
// that directory exists. It returns the written path, or "" when skipped.
func WriteSnapshot(doc *yaml.Node, dir string, version apimodel.Version) (string, error) {
	if dir == "" {
		return "", nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", nil
	}

	data, err := nodeutil.MarshalJSONIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("source: encoding snapshot: %w", err)
	}
	path, err := pathutil.SanitizeOutputPath(SnapshotPath(dir, version))
	if err != nil {
		return "", fmt.Errorf("source: writing snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), fileutil.OwnerReadWrite); err != nil {
		return "", fmt.Errorf("source: writing snapshot: %w", err)
	}
	return path, nil
}
