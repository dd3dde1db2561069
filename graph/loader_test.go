package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/automl/component"
)

const listFormYAML = `
name: regression
nodes:
  - name: Imputer
    component: SimpleImputer
    inputs: [X, y]
  - name: Scaler
    component: StandardScaler
    inputs: [Imputer.x, y]
  - name: Model
    component: LinearRegressor
    inputs: [Scaler.x, y]
parameters:
  Imputer:
    impute_strategy: median
`

const mappingFormYAML = `
name: regression
nodes:
  Imputer: [SimpleImputer, X, y]
  Scaler: [StandardScaler, Imputer.x, y]
  Model: [LinearRegressor, Scaler.x, y]
`

func TestParseDefinition_ListForm(t *testing.T) {
	def, err := ParseDefinition([]byte(listFormYAML), "regression.yaml")
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if def.Name != "regression" {
		t.Fatalf("Name = %q", def.Name)
	}
	if len(def.Nodes) != 3 || def.Nodes[2].Name != "Model" {
		t.Fatalf("Nodes = %+v", def.Nodes)
	}
	if got := def.Parameters["Imputer"]["impute_strategy"]; got != "median" {
		t.Fatalf("parameter = %v", got)
	}
}

func TestParseDefinition_MappingFormPreservesOrder(t *testing.T) {
	def, err := ParseDefinition([]byte(mappingFormYAML), "regression.yaml")
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	names := make([]string, len(def.Nodes))
	for i, n := range def.Nodes {
		names[i] = n.Name
	}
	if want := []string{"Imputer", "Scaler", "Model"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("node order = %v, want %v", names, want)
	}
	if def.Nodes[1].Component != "StandardScaler" {
		t.Fatalf("Scaler component = %q", def.Nodes[1].Component)
	}
	if want := []string{"Scaler.x", "y"}; !reflect.DeepEqual(def.Nodes[2].Inputs, want) {
		t.Fatalf("Model inputs = %v", def.Nodes[2].Inputs)
	}
}

func TestParseDefinition_BothFormsBuildSameGraph(t *testing.T) {
	reg := component.DefaultRegistry()
	list, err := ParseDefinition([]byte(listFormYAML), "a.yaml")
	if err != nil {
		t.Fatalf("list form: %v", err)
	}
	mapping, err := ParseDefinition([]byte(mappingFormYAML), "b.yaml")
	if err != nil {
		t.Fatalf("mapping form: %v", err)
	}
	g1, err := Build(list, reg)
	if err != nil {
		t.Fatalf("Build list: %v", err)
	}
	g2, err := Build(mapping, reg)
	if err != nil {
		t.Fatalf("Build mapping: %v", err)
	}
	if !reflect.DeepEqual(g1.ComputeOrder(), g2.ComputeOrder()) {
		t.Fatalf("orders differ: %v vs %v", g1.ComputeOrder(), g2.ComputeOrder())
	}
}

func TestParseDefinition_Invalid(t *testing.T) {
	cases := []string{
		"nodes: 17",
		"nodes:\n  Imputer: []",
		"nodes: []",
		"nodes:\n  - component: SimpleImputer",
	}
	for _, src := range cases {
		if _, err := ParseDefinition([]byte(src), "bad.yaml"); err == nil {
			t.Fatalf("ParseDefinition(%q) must fail", src)
		}
	}
}

func TestParseDefinition_NameDefaultsToFile(t *testing.T) {
	def, err := ParseDefinition([]byte("nodes:\n  Imputer: [SimpleImputer, X, y]\n"), "/tmp/churn.yaml")
	if err != nil {
		t.Fatalf("ParseDefinition: %v", err)
	}
	if def.Name != "churn" {
		t.Fatalf("Name = %q, want churn", def.Name)
	}
}

func TestFileDefinitionLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regression.yaml")
	if err := os.WriteFile(path, []byte(listFormYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loader := NewFileDefinitionLoader(dir)
	def, err := loader.Load("regression")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(def.Nodes) != 3 {
		t.Fatalf("Nodes = %+v", def.Nodes)
	}

	if _, err := loader.Load("missing"); err == nil {
		t.Fatal("Load of missing definition must fail")
	}
}

func TestFileDefinitionLoader_InvalidFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	broken := "nodes:\n  - name: 3bad name\n    component: SimpleImputer\n    inputs: [X, y]\n"
	if err := os.WriteFile(path, []byte(broken), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loader := NewFileDefinitionLoader(dir)
	_, err := loader.Load("broken")
	if err == nil {
		t.Fatal("Load of invalid definition must fail")
	}
	if strings.Contains(err.Error(), "not found") {
		t.Fatalf("invalid file must not be reported as absent: %v", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("error must name the violated rule: %v", err)
	}

	if _, err := LoadDefinition("broken", filepath.Join(dir, "nope.yaml"), path); err == nil ||
		strings.Contains(err.Error(), "not found") {
		t.Fatalf("LoadDefinition must surface the validation error, got %v", err)
	}
}

func TestFileDefinitionLoader_SearchesNestedSubdirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "teams", "fraud")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.yml"), []byte(listFormYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	def, err := NewFileDefinitionLoader(dir).Load("deep")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(def.Nodes) != 3 {
		t.Fatalf("Nodes = %+v", def.Nodes)
	}
}

func TestLoadDefinition_ExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.yml")
	if err := os.WriteFile(path, []byte(mappingFormYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	def, err := LoadDefinition("p", filepath.Join(dir, "nope.yml"), path)
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if def.Name != "regression" {
		t.Fatalf("Name = %q", def.Name)
	}
}
