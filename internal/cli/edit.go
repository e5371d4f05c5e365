package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/clientbook/internal/controller"
)

// Flag names of the client form.
const (
	flagName       = "name"
	flagPhone      = "phone"
	flagAddress    = "address"
	flagPostalCode = "postal-code"
	flagCity       = "city"
	flagBirthDate  = "birth-date"
	flagCredit     = "credit"
	flagGood       = "good"
	flagHairColor  = "hair-color"
)

// bindFormFlags registers one flag per field of f.
func bindFormFlags(cmd *cobra.Command, f *controller.ClientForm) {
	fs := cmd.Flags()
	fs.StringVar(&f.Name, flagName, "", "full name")
	fs.StringVar(&f.Phone, flagPhone, "", "phone number")
	fs.StringVar(&f.Address, flagAddress, "", "street address")
	fs.StringVar(&f.PostalCode, flagPostalCode, "", "postal code, exactly 5 digits")
	fs.StringVar(&f.City, flagCity, "", "city")
	fs.StringVar(&f.BirthDate, flagBirthDate, "", "birth date, YYYY-MM-DD")
	fs.StringVar(&f.AvailableCredit, flagCredit, "", "available credit, e.g. 1500.50")
	fs.BoolVar(&f.IsGoodClient, flagGood, false, "mark as a good client")
	fs.StringVar(&f.HairColor, flagHairColor, "", "hair color: brown, blond, red, bald")
}

// mergeForm returns base with every field whose flag was set on cmd replaced
// by the value in edits.
func mergeForm(cmd *cobra.Command, base, edits controller.ClientForm) controller.ClientForm {
	changed := cmd.Flags().Changed
	if changed(flagName) {
		base.Name = edits.Name
	}
	if changed(flagPhone) {
		base.Phone = edits.Phone
	}
	if changed(flagAddress) {
		base.Address = edits.Address
	}
	if changed(flagPostalCode) {
		base.PostalCode = edits.PostalCode
	}
	if changed(flagCity) {
		base.City = edits.City
	}
	if changed(flagBirthDate) {
		base.BirthDate = edits.BirthDate
	}
	if changed(flagCredit) {
		base.AvailableCredit = edits.AvailableCredit
	}
	if changed(flagGood) {
		base.IsGoodClient = edits.IsGoodClient
	}
	if changed(flagHairColor) {
		base.HairColor = edits.HairColor
	}
	return base
}

func newAddCmd(s *session) *cobra.Command {
	var form controller.ClientForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a client",
		Long: "Create a client from the given fields. Every field except --good is\n" +
			"required; all invalid fields are reported together.",
		Example: `  clientbook add --name "Alice Martin" --phone 0612345678 \
    --address "12 rue des Lilas" --postal-code 69003 --city Lyon \
    --birth-date 1988-04-17 --credit 250.75 --good --hair-color brown`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			id, err := ctl.Create(form)
			if err != nil {
				return err
			}
			if s.flags.jsonMode {
				c, err := ctl.Get(id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created client %d\n", id)
			return nil
		},
	}
	bindFormFlags(cmd, &form)
	return cmd
}

func newUpdateCmd(s *session) *cobra.Command {
	var edits controller.ClientForm
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a client",
		Long: "Load the client, apply the given flags, validate the result, and\n" +
			"overwrite the whole row. Fields without a flag keep their value.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			id, err := parseID(argv[0])
			if err != nil {
				return err
			}
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			current, err := ctl.Get(id)
			if err != nil {
				return err
			}
			form := mergeForm(cmd, controller.FormFromClient(current), edits)
			if err := ctl.Update(id, form); err != nil {
				return err
			}
			if s.flags.jsonMode {
				c, err := ctl.Get(id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated client %d\n", id)
			return nil
		},
	}
	bindFormFlags(cmd, &edits)
	return cmd
}

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id> [id...]",
		Short: "Delete one or more clients",
		Long: "Delete the listed clients. With several ids the deletion is atomic:\n" +
			"if any id does not exist nothing is deleted.",
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, argv []string) error {
			ids := make([]int64, 0, len(argv))
			for _, a := range argv {
				id, err := parseID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			ctl, closeFn, err := s.open()
			if err != nil {
				return err
			}
			defer closeFn()

			if len(ids) == 1 {
				if err := ctl.Delete(ids[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted client %d\n", ids[0])
				return nil
			}
			if err := ctl.DeleteMany(ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d clients\n", len(ids))
			return nil
		},
	}
}
