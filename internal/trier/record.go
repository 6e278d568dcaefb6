package trier

// Record is one raw object returned by a Trier list endpoint. Field sets vary
// per endpoint and installation, so records stay schemaless until the caller
// maps them.
type Record map[string]any

// Trier wraps record lists in differently named envelopes depending on the
// endpoint. These are the keys observed in the wild, probed in order.
var listKeys = []string{
	"registros",
	"itens",
	"dados",
	"data",
	"resultado",
	"result",
	"lista",
	"conteudo",
	"content",
}

// extractRecords pulls the record list out of a decoded page payload. A bare
// JSON array is accepted as-is; unknown shapes yield no records.
func extractRecords(payload any) []Record {
	switch v := payload.(type) {
	case []any:
		return toRecords(v)
	case map[string]any:
		for _, key := range listKeys {
			if list, ok := v[key].([]any); ok {
				return toRecords(list)
			}
		}
	}
	return nil
}

func toRecords(list []any) []Record {
	records := make([]Record, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, Record(obj))
		}
	}
	return records
}
