package series

import (
	"encoding/json"
	"os"
)

// PeriodsFile matches the JSON shape of the sample period files:
//
//	{
//	  "party": { "name": "...", "is_producer": true, "source": "wind" },
//	  "data":  [ { "contract": "PH24072914", "mcp": ..., ... } ]
//	}
type PeriodsFile struct {
	Party Party    `json:"party"`
	Data  []Period `json:"data"`
}

func LoadPeriodsJSON(path string) (*PeriodsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f PeriodsFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
