package reader

import (
	"encoding/json"
	"strconv"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/zerr"
)

func encodeCollection(c domain.Collection) ([]byte, error) {
	if c == nil {
		c = domain.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrEncodeFailed.Error())
	}
	return data, nil
}

func decodeCollection(data []byte) (domain.Collection, error) {
	var c domain.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, zerr.Wrap(err, domain.ErrDecodeFailed.Error())
	}
	if c == nil {
		c = domain.Collection{}
	}
	return c, nil
}

func encodeTimestamp(ts int64) []byte {
	return strconv.AppendInt(nil, ts, 10)
}

func decodeTimestamp(data []byte) (int64, error) {
	ts, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrDecodeFailed.Error())
	}
	return ts, nil
}
