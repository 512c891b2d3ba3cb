package dao

import "github.com/gridform/gridform/internal/model1"

// SampleRecords returns the demo dataset.
func SampleRecords() []model1.Record {
	no := false
	return []model1.Record{
		{Key: "1", Fields: model1.Fields{"name": "Ada Lovelace", "phone": "0101234567", "email": "ada@example.com", "age": 36}},
		{Key: "2", Fields: model1.Fields{"name": "Grace Hopper", "phone": "0102345678", "email": "grace@example.com", "age": 85}},
		{Key: "3", Fields: model1.Fields{"name": "Alan Turing", "phone": "0103456789", "email": "alan@example.com", "age": 41}},
		{Key: "4", Fields: model1.Fields{"name": "Edsger Dijkstra", "phone": "0104567890", "email": "ewd@example.com", "age": 72}, Removable: &no},
	}
}
