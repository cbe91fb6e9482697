package function

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// storageFields lists the paths read from every record, in lookup order.
var storageFields = []string{
	"s3",
	"s3.bucket",
	"s3.bucket.name",
	"s3.object",
	"s3.object.key",
	"s3.object.size",
	"eventName",
}

// FormatStorage summarises every record of an S3 notification, in order,
// and logs one line per record.
//
// Only the first record is looked at by Classify. A later record missing a
// field fails the whole batch with *MissingFieldError and no response.
func FormatStorage(ev Event, log logrus.FieldLogger) (*Response, error) {
	records := lookup(gjson.ParseBytes(ev), "Records").Array()

	results := make([]StorageResult, 0, len(records))
	for i, record := range records {
		result, err := storageResult(i, record)
		if err != nil {
			return nil, err
		}
		results = append(results, result)

		bucket := lookup(record, "s3.bucket.name").String()
		key := lookup(record, "s3.object.key").String()
		size := lookup(record, "s3.object.size").String()
		event := lookup(record, "eventName").String()
		log.WithFields(logrus.Fields{
			"bucket": bucket,
			"key":    key,
			"size":   size,
			"event":  event,
		}).Infof("Processed S3 event: %s - %s/%s (%s bytes)", event, bucket, key, size)
	}

	data, err := json.Marshal(StorageBody{
		Message: MessageStorage,
		Results: results,
	})
	if err != nil {
		return nil, &SerializationError{Kind: KindStorage, Err: err}
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       string(data),
	}, nil
}

func storageResult(i int, record gjson.Result) (StorageResult, error) {
	for _, field := range storageFields {
		if !lookup(record, field).Exists() {
			return StorageResult{}, &MissingFieldError{Record: i, Field: field}
		}
	}

	return StorageResult{
		Bucket: json.RawMessage(lookup(record, "s3.bucket.name").Raw),
		Key:    json.RawMessage(lookup(record, "s3.object.key").Raw),
		Size:   json.RawMessage(lookup(record, "s3.object.size").Raw),
		Event:  json.RawMessage(lookup(record, "eventName").Raw),
	}, nil
}
