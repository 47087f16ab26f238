package cmd

import (
	"errors"
	"testing"

	"github.com/illarion/seedpass/internal/derive"
)

func TestCheckService(t *testing.T) {
	for _, svc := range []string{"", "   ", "\t\n", " "} {
		err := checkService(svc)
		var empty *derive.EmptyInputError
		if !errors.As(err, &empty) || empty.Field != derive.FieldService {
			t.Errorf("checkService(%q) = %v, want empty service error", svc, err)
		}
	}

	for _, svc := range []string{"gmail.com", "  GitHub.com "} {
		if err := checkService(svc); err != nil {
			t.Errorf("checkService(%q) = %v, want nil", svc, err)
		}
	}
}
