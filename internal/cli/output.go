package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeClients prints clients as an aligned table, one row per client.
func writeClients(w io.Writer, clients []*types.Client) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tCITY\tPOSTAL\tBIRTH\tCREDIT\tGOOD\tHAIR")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, c.Phone, c.City, c.PostalCode, c.BirthDate,
			formatCredit(c.AvailableCredit), yesNo(c.IsGoodClient), c.HairColor)
	}
	return tw.Flush()
}

// writeClient prints every field of c on its own line.
func writeClient(w io.Writer, c *types.Client) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", strconv.FormatInt(c.ID, 10)},
		{"Name", c.Name},
		{"Phone", c.Phone},
		{"Address", c.Address},
		{"Postal code", c.PostalCode},
		{"City", c.City},
		{"Birth date", c.BirthDate},
		{"Credit", formatCredit(c.AvailableCredit)},
		{"Good client", yesNo(c.IsGoodClient)},
		{"Hair color", string(c.HairColor)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func formatCredit(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
