package req

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"deal_dashboard/internal/domain"
	"deal_dashboard/pkg/errcodes"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// Validate runs struct tag validation and converts failures into
// ValidationError domain errors.
func Validate(ctx context.Context, dest any) error {
	if err := validate.StructCtx(ctx, dest); err != nil {
		return domain.WrapError(err, errcodes.ValidationError, "validation error")
	}

	return nil
}

// QueryString returns the trimmed query value or fallback when it is absent.
func QueryString(r *http.Request, name, fallback string) string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return fallback
	}

	return v
}

func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.WrapError(
			fmt.Errorf("strconv.Atoi: %w", err),
			errcodes.ValidationError,
			fmt.Sprintf("query parameter %q must be an integer", name),
		)
	}

	return n, nil
}
