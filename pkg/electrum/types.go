package electrum

import (
	"encoding/json"
	"fmt"
)

type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	ID     *uint64         `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// err returns the error carried by the response, if any. Some servers
// return the error as a plain string rather than an object.
func (r response) err() error {
	if len(r.Error) <= 0 || string(r.Error) == "null" {
		return nil
	}

	serverErr := &ServerError{}
	if err := json.Unmarshal(r.Error, serverErr); err == nil {
		return serverErr
	}
	var msg string
	if err := json.Unmarshal(r.Error, &msg); err == nil {
		return &ServerError{Message: msg}
	}
	return &ProtocolError{fmt.Sprintf("invalid error object %s", r.Error)}
}

// HeaderNotification is the tip returned by blockchain.headers.subscribe.
type HeaderNotification struct {
	Height int64  `json:"height"`
	Hex    string `json:"hex"`
}
