package catalog

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/clim-settings-service/internal/domain"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	Path    string // e.g. "collections[obs]" or "shapes[GLB].temp"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validate checks the catalog invariants and returns every violation joined
// into one error, or nil.
func Validate(c *Catalog) error {
	var errs []error
	errs = append(errs, validateVariables(c.variables)...)
	errs = append(errs, validateCollections(c.collections)...)
	errs = append(errs, validateConstraints(c.constraints)...)
	errs = append(errs, validateShapes(c.shapeDefaults, c.shapeSpecifics, c.shapeAnnotation)...)
	errs = append(errs, validateEnsembles("wrf", c.wrfEns, c.wrfExps)...)
	errs = append(errs, validateEnsembles("cesm", c.cesmEns, c.cesmExps)...)
	return errors.Join(errs...)
}

func validateVariables(variables domain.VariableTable) []error {
	var errs []error
	for _, name := range sortedKeys(variables) {
		g := variables[name]
		path := fmt.Sprintf("variables[%s]", name)
		if len(g.Vars) == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "vars must not be empty"})
		}
		if len(g.Files) == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "files must not be empty"})
		}
	}
	return errs
}

func validateCollections(collections domain.CollectionTable) []error {
	var errs []error
	for _, name := range sortedKeys(collections) {
		c := collections[name]
		path := fmt.Sprintf("collections[%s]", name)
		if len(c.Exps) == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "exps must not be empty"})
		}
		switch {
		case c.Master == "":
			errs = append(errs, ValidationError{Path: path, Message: "master is required"})
		case !c.HasMember(c.Master):
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("master %q is not a member", c.Master)})
		}
		if c.Reference != "" && !c.HasMember(c.Reference) {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("reference %q is not a member", c.Reference)})
		}
	}
	return errs
}

func validateConstraints(sc domain.StationConstraints) []error {
	if sc.Lat.Min() > sc.Lat.Max() {
		return []error{ValidationError{Path: "constraints.lat", Message: "lower limit exceeds upper limit"}}
	}
	return nil
}

// validateShapes checks that every merged shape table contains all defaults
// and that shape-specific values win over them.
func validateShapes(defaults domain.RangeTable, specifics, annotation domain.ShapeTable) []error {
	var errs []error
	for _, shape := range sortedKeys(annotation) {
		merged := annotation[shape]
		for _, key := range sortedKeys(merged) {
			if r := merged[key]; r.Min() > r.Max() {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("shapes[%s].%s", shape, key),
					Message: "lower limit exceeds upper limit",
				})
			}
		}
		for _, key := range sortedKeys(defaults) {
			want := defaults[key]
			if r, ok := specifics[shape][key]; ok {
				want = r
			}
			got, ok := merged[key]
			switch {
			case !ok:
				errs = append(errs, ValidationError{Path: fmt.Sprintf("shapes[%s]", shape), Message: fmt.Sprintf("missing default %q", key)})
			case got != want:
				errs = append(errs, ValidationError{Path: fmt.Sprintf("shapes[%s].%s", shape, key), Message: fmt.Sprintf("expected %v, got %v", want, got)})
			}
		}
		for _, key := range sortedKeys(specifics[shape]) {
			if got, ok := merged[key]; !ok || got != specifics[shape][key] {
				errs = append(errs, ValidationError{Path: fmt.Sprintf("shapes[%s].%s", shape, key), Message: "shape setting not applied"})
			}
		}
	}
	return errs
}

func validateEnsembles(model string, ensembles domain.EnsembleTable, experiments domain.ExperimentTable) []error {
	var errs []error
	for _, name := range sortedKeys(ensembles) {
		path := fmt.Sprintf("ensembles.%s[%s]", model, name)
		members := ensembles[name]
		if len(members) == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "ensemble has no members"})
		}
		for _, member := range members {
			if _, ok := experiments[member]; !ok {
				errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("unknown %s experiment %q", model, member)})
			}
		}
	}
	return errs
}
