package utils

import (
	"bytes"
	"encoding/json"
)

// PrettyJson serializa com indentação; []byte é tratado como JSON já serializado
func PrettyJson(in any) (string, error) {
	buffer, isRaw := in.([]byte)
	if !isRaw {
		var err error
		buffer, err = json.Marshal(in)
		if err != nil {
			return "", err
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buffer, "", "  "); err != nil {
		return "", err
	}

	return out.String(), nil
}
