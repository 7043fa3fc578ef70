package cfgloader

import (
	"encoding/json"
	"log/slog"

	"github.com/rise-and-shine/handlerx/mask"
)

// printConfig logs the loaded config, flattened to dotted keys, with every
// `mask:"true"` field replaced.
func printConfig(config any) {
	out, err := json.MarshalIndent(mask.StructToOrdMap(config), "", "  ")
	if err != nil {
		slog.Error("[cfgloader]: failed to marshal config", "error", err.Error())
		return
	}
	slog.Info("[cfgloader]: loaded config:\n" + string(out))
}
