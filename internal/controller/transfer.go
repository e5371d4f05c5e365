package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/clientbook/internal/jsonl"
	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// Export writes every client, ordered by id, to a JSONL file at path and
// returns how many were written. The file is replaced atomically.
func (c *ClientController) Export(path string) (int, error) {
	all, err := c.clients.ListAll()
	if err != nil {
		return 0, c.fail("export", 0, err)
	}
	records, err := jsonl.Marshal(all)
	if err != nil {
		return 0, c.fail("export", 0, err)
	}
	if err := jsonl.Write(path, records); err != nil {
		return 0, c.fail("export", 0, err)
	}
	c.log.Info().Str("op", "export").Str("path", path).Int("count", len(all)).Msg("clients exported")
	return len(all), nil
}

// Import restores the clients of a JSONL file written by Export, keeping
// their ids. Every record is checked before anything is written: malformed
// or invalid records, ids repeated in the file, and ids already in the store
// are all reported in one *types.ValidationError whose fields are prefixed
// with the line number. Returns how many clients were restored.
func (c *ClientController) Import(path string) (int, error) {
	lines, err := jsonl.Read(path)
	if err != nil {
		return 0, c.fail("import", 0, err)
	}

	ve := &types.ValidationError{}
	clients := make([]*types.Client, 0, len(lines))
	seen := make(map[int64]int, len(lines))
	for _, line := range lines {
		client, err := decodeClient(line.Data)
		if err != nil {
			ve.Add(lineField(line.Number, "record"), err.Error())
			continue
		}
		normalized, err := ValidateClient(client)
		if err != nil {
			var fields *types.ValidationError
			if !errors.As(err, &fields) {
				return 0, c.fail("import", 0, err)
			}
			for _, f := range fields.Fields {
				ve.Add(lineField(line.Number, f.Field), f.Message)
			}
			continue
		}
		if first, dup := seen[normalized.ID]; dup {
			ve.Add(lineField(line.Number, "id"), fmt.Sprintf("duplicates line %d", first))
			continue
		}
		seen[normalized.ID] = line.Number

		_, err = c.clients.GetByID(normalized.ID)
		switch {
		case err == nil:
			ve.Add(lineField(line.Number, "id"), fmt.Sprintf("client %d already exists", normalized.ID))
			continue
		case !errors.Is(err, types.ErrNotFound):
			return 0, c.fail("import", normalized.ID, err)
		}
		clients = append(clients, normalized)
	}
	if err := ve.Err(); err != nil {
		return 0, c.fail("import", 0, err)
	}

	for _, client := range clients {
		if err := c.clients.Restore(client); err != nil {
			return 0, c.fail("import", client.ID, err)
		}
	}
	c.log.Info().Str("op", "import").Str("path", path).Int("count", len(clients)).Msg("clients imported")
	return len(clients), nil
}

// decodeClient strictly decodes one exported record.
func decodeClient(data json.RawMessage) (*types.Client, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var client types.Client
	if err := dec.Decode(&client); err != nil {
		return nil, err
	}
	return &client, nil
}

func lineField(n int, field string) string {
	return fmt.Sprintf("line %d %s", n, field)
}
