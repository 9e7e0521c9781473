package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/annocache/internal/core/domain"
)

type targetFlags struct {
	property string
	method   string
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.property, "property", "p", "", "Target a property of the declaration")
	cmd.Flags().StringVar(&f.method, "method", "", "Target a method of the declaration")
	cmd.MarkFlagsMutuallyExclusive("property", "method")
}

// target builds the target named by the declaration argument and the member flags.
func (f *targetFlags) target(name string) (domain.Target, error) {
	decl, err := domain.ParseDeclaration(name)
	if err != nil {
		return domain.Target{}, err
	}

	var t domain.Target
	switch {
	case f.property != "":
		t = domain.PropertyTarget(decl, f.property)
	case f.method != "":
		t = domain.MethodTarget(decl, f.method)
	default:
		t = domain.ClassTarget(decl)
	}
	if err := t.Validate(); err != nil {
		return domain.Target{}, err
	}
	return t, nil
}
