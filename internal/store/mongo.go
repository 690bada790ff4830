package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biowearth/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seqField orders documents of a collection by insertion.
const seqField = "_seq"

// MongoBackend keeps one Mongo collection per record collection; document
// bodies are stored as plain fields next to _id and _seq.
type MongoBackend struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoBackend(client *mongo.Client, database string) *MongoBackend {
	return &MongoBackend{client: client, db: client.Database(database)}
}

func (m *MongoBackend) List(ctx context.Context, c model.Collection) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: seqField, Value: 1}})
	cur, err := m.db.Collection(string(c)).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Document{}
	for cur.Next(ctx) {
		var raw bson.D
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		doc, err := fromBSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}

func (m *MongoBackend) Insert(ctx context.Context, c model.Collection, id string, body []byte) error {
	d, err := toBSON(body)
	if err != nil {
		return err
	}
	d = append(bson.D{{Key: "_id", Value: id}, {Key: seqField, Value: time.Now().UnixNano()}}, d...)
	_, err = m.db.Collection(string(c)).InsertOne(ctx, d)
	return err
}

func (m *MongoBackend) Merge(ctx context.Context, c model.Collection, id string, fields Fields) error {
	body, err := EncodeFields(fields)
	if err != nil {
		return err
	}
	set, err := toBSON(body)
	if err != nil {
		return err
	}
	coll := m.db.Collection(string(c))
	if len(set) == 0 {
		n, err := coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}
	res, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoBackend) Remove(ctx context.Context, c model.Collection, id string) error {
	_, err := m.db.Collection(string(c)).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return err
}

func (m *MongoBackend) Put(ctx context.Context, c model.Collection, id string, body []byte) error {
	coll := m.db.Collection(string(c))
	seq := time.Now().UnixNano()
	var existing struct {
		Seq int64 `bson:"_seq"`
	}
	err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&existing)
	switch {
	case err == nil:
		seq = existing.Seq
	case !errors.Is(err, mongo.ErrNoDocuments):
		return err
	}

	d, err := toBSON(body)
	if err != nil {
		return err
	}
	d = append(bson.D{{Key: "_id", Value: id}, {Key: seqField, Value: seq}}, d...)
	_, err = coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, d, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoBackend) Ping(ctx context.Context) error { return m.client.Ping(ctx, nil) }

func (m *MongoBackend) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// toBSON converts an encoded JSON body to a BSON document via relaxed extended JSON.
func toBSON(body []byte) (bson.D, error) {
	var d bson.D
	if err := bson.UnmarshalExtJSON(body, false, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFields, err)
	}
	return d, nil
}

func fromBSON(raw bson.D) (Document, error) {
	var doc Document
	body := make(bson.D, 0, len(raw))
	for _, e := range raw {
		switch e.Key {
		case "_id":
			doc.ID = fmt.Sprint(e.Value)
		case seqField:
		default:
			body = append(body, e)
		}
	}
	b, err := bson.MarshalExtJSON(body, false, false)
	if err != nil {
		return doc, err
	}
	doc.Fields, err = DecodeFields(b)
	return doc, err
}
