package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

// errInvalidForm makes `validate` exit non-zero after printing the errors
var errInvalidForm = errors.New("form is invalid")

var (
	shapeKind  string
	shapeCount int
	shapeSeed  uint64

	validateMode string
	formValues   = map[domain.Field]*string{}
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print generated background shape descriptors as JSON",
	Args:  cobra.NoArgs,
	RunE:  runShapes,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate auth form values and print the field errors",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	shapesCmd.Flags().StringVar(&shapeKind, "kind", string(domain.ShapeDot), "shape kind (dot, circle, polygon, blob, line, accent)")
	shapesCmd.Flags().IntVar(&shapeCount, "count", 10, "number of descriptors")
	shapesCmd.Flags().Uint64Var(&shapeSeed, "seed", 0, "seed for reproducible output (0 = random)")

	validateCmd.Flags().StringVar(&validateMode, "mode", string(domain.ModeSignIn), "form mode (signin, signup)")
	for _, f := range []struct {
		field domain.Field
		flag  string
	}{
		{domain.FieldEmail, "email"},
		{domain.FieldPassword, "password"},
		{domain.FieldConfirmPassword, "confirm-password"},
		{domain.FieldFirstName, "first-name"},
		{domain.FieldLastName, "last-name"},
		{domain.FieldRole, "role"},
	} {
		formValues[f.field] = validateCmd.Flags().String(f.flag, "", string(f.field)+" value")
	}
}

func runShapes(cmd *cobra.Command, _ []string) error {
	kind, err := domain.ParseShapeKind(shapeKind)
	if err != nil {
		return err
	}
	if shapeCount < 0 || shapeCount > domain.MaxShapeCount {
		return fmt.Errorf("%w: count must be between 0 and %d", usecase.ErrInvalidArgument, domain.MaxShapeCount)
	}

	gen := usecase.NewShapeGenerator()
	if shapeSeed != 0 {
		gen = usecase.NewSeededShapeGenerator(shapeSeed)
	}
	shapes, err := gen.Generate(shapeCount, kind)
	if err != nil {
		return err
	}
	if shapes == nil {
		shapes = []domain.Shape{}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(shapes)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	mode, err := domain.ParseMode(validateMode)
	if err != nil {
		return err
	}

	fields := domain.NewFormState()
	for field, value := range formValues {
		if *value == "" && field == domain.FieldRole {
			continue
		}
		if fields, err = fields.With(field, *value); err != nil {
			return err
		}
	}

	errs := usecase.Validate(fields, mode)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(errs.Map()); err != nil {
		return err
	}
	if !errs.Empty() {
		return errInvalidForm
	}
	return nil
}
