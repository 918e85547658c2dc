package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
	"github.com/statewisejobs/statewise-jobs/pkg/logger"
)

// findOpts applies the newest-first sort and the query's page window.
func findOpts(q listings.ListQuery) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
}

func insertID(id string) string {
	if id != "" {
		return id
	}
	return primitive.NewObjectID().Hex()
}

// MongoJobRepository implements JobRepository on a Mongo collection.
type MongoJobRepository struct {
	col *mongo.Collection
}

func NewMongoJobRepository(col *mongo.Collection) *MongoJobRepository {
	return &MongoJobRepository{col: col}
}

func jobFilter(q listings.ListQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"department": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	return filter
}

func (r *MongoJobRepository) Create(ctx context.Context, j *listings.Job) (string, error) {
	now := time.Now().UTC()
	j.ID = insertID(j.ID)
	j.CreatedAt = now
	j.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, j); err != nil {
		return "", err
	}
	return j.ID, nil
}

func (r *MongoJobRepository) Get(ctx context.Context, id string) (*listings.Job, error) {
	var j listings.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *MongoJobRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Job, int64, error) {
	filter := jobFilter(q)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := r.col.Find(ctx, filter, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []*listings.Job{}
	for cur.Next(ctx) {
		var j listings.Job
		if err := cur.Decode(&j); err != nil {
			return nil, 0, err
		}
		out = append(out, &j)
	}
	return out, total, cur.Err()
}

func (r *MongoJobRepository) Update(ctx context.Context, id string, j *listings.Job) error {
	j.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":         j.Title,
		"department":    j.Department,
		"state":         j.State,
		"category":      j.Category,
		"vacancy":       j.Vacancy,
		"lastDate":      j.LastDate,
		"salary":        j.Salary,
		"qualification": j.Qualification,
		"description":   j.Description,
		"applicationLink": j.ApplicationLink,
		"isActive":      j.IsActive,
		"updatedAt":     j.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoJobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoJobRepository) CountActiveByState(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$state", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cur.Err()
}

func (r *MongoJobRepository) CountActive(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"isActive": true})
}

func (r *MongoJobRepository) CreatedPerDaySince(ctx context.Context, since time.Time) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}, "isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cur.Err()
}

// MongoExamRepository implements ExamRepository on a Mongo collection.
type MongoExamRepository struct {
	col *mongo.Collection
}

func NewMongoExamRepository(col *mongo.Collection) *MongoExamRepository {
	// index supporting the calendar page's date/status queries; queries
	// still work without it, so a failure is logged rather than fatal
	idx := mongo.IndexModel{Keys: bson.D{{Key: "examDate", Value: 1}, {Key: "status", Value: 1}}}
	if _, err := col.Indexes().CreateOne(context.Background(), idx); err != nil {
		logger.Errorf("create exam calendar index: %v", err)
	}
	return &MongoExamRepository{col: col}
}

func (r *MongoExamRepository) Create(ctx context.Context, e *listings.Exam) (string, error) {
	now := time.Now().UTC()
	e.ID = insertID(e.ID)
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

func (r *MongoExamRepository) Get(ctx context.Context, id string) (*listings.Exam, error) {
	var e listings.Exam
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoExamRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Exam, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"examName": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"organization": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "examDate", Value: 1}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []*listings.Exam{}
	for cur.Next(ctx) {
		var e listings.Exam
		if err := cur.Decode(&e); err != nil {
			return nil, 0, err
		}
		out = append(out, &e)
	}
	return out, total, cur.Err()
}

func (r *MongoExamRepository) Update(ctx context.Context, id string, e *listings.Exam) error {
	e.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":                e.Title,
		"examName":             e.ExamName,
		"examDate":             e.ExamDate,
		"applicationStartDate": e.ApplicationStartDate,
		"applicationEndDate":   e.ApplicationEndDate,
		"resultDate":           e.ResultDate,
		"status":               e.Status,
		"description":          e.Description,
		"organization":         e.Organization,
		"category":             e.Category,
		"state":                e.State,
		"notificationLink":     e.NotificationLink,
		"applicationLink":      e.ApplicationLink,
		"isActive":             e.IsActive,
		"updatedAt":            e.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoExamRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoExamRepository) CountActiveByStatus(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cur.Err()
}

func (r *MongoExamRepository) CountActive(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"isActive": true})
}

// MongoDownloadRepository implements DownloadRepository; one instance per
// collection (results, admit_cards, answer_keys, syllabus).
type MongoDownloadRepository struct {
	col *mongo.Collection
}

func NewMongoDownloadRepository(col *mongo.Collection) *MongoDownloadRepository {
	return &MongoDownloadRepository{col: col}
}

func (r *MongoDownloadRepository) Create(ctx context.Context, d *listings.Download) (string, error) {
	now := time.Now().UTC()
	d.ID = insertID(d.ID)
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return "", err
	}
	return d.ID, nil
}

func (r *MongoDownloadRepository) Get(ctx context.Context, id string) (*listings.Download, error) {
	var d listings.Download
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoDownloadRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Download, int64, error) {
	filter := bson.M{}
	if q.Search != "" {
		filter["title"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	cur, err := r.col.Find(ctx, filter, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []*listings.Download{}
	for cur.Next(ctx) {
		var d listings.Download
		if err := cur.Decode(&d); err != nil {
			return nil, 0, err
		}
		out = append(out, &d)
	}
	return out, total, cur.Err()
}

func (r *MongoDownloadRepository) Update(ctx context.Context, id string, d *listings.Download) error {
	d.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":        d.Title,
		"state":        d.State,
		"examDate":     d.ExamDate,
		"resultDate":   d.ResultDate,
		"downloadLink": d.DownloadLink,
		"isActive":     d.IsActive,
		"updatedAt":    d.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoDownloadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoFooterRepository implements FooterRepository.
type MongoFooterRepository struct {
	col *mongo.Collection
}

func NewMongoFooterRepository(col *mongo.Collection) *MongoFooterRepository {
	return &MongoFooterRepository{col: col}
}

func (r *MongoFooterRepository) GetActive(ctx context.Context) (*listings.Footer, error) {
	var f listings.Footer
	if err := r.col.FindOne(ctx, bson.M{"isActive": true}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoFooterRepository) Create(ctx context.Context, f *listings.Footer) (string, error) {
	now := time.Now().UTC()
	f.ID = insertID(f.ID)
	f.CreatedAt = now
	f.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		return "", err
	}
	return f.ID, nil
}

func (r *MongoFooterRepository) Update(ctx context.Context, id string, f *listings.Footer) error {
	f.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":            f.Title,
		"description":      f.Description,
		"links":            f.Links,
		"socialLinks":      f.SocialLinks,
		"contactInfo":      f.ContactInfo,
		"newsletterSignup": f.NewsletterSignup,
		"copyright":        f.Copyright,
		"isActive":         f.IsActive,
		"updatedAt":        f.UpdatedAt,
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoContactRepository implements ContactRepository.
type MongoContactRepository struct {
	col *mongo.Collection
}

func NewMongoContactRepository(col *mongo.Collection) *MongoContactRepository {
	return &MongoContactRepository{col: col}
}

func (r *MongoContactRepository) Create(ctx context.Context, c *listings.Contact) (string, error) {
	now := time.Now().UTC()
	c.ID = insertID(c.ID)
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (r *MongoContactRepository) List(ctx context.Context, q listings.ListQuery) ([]*listings.Contact, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	cur, err := r.col.Find(ctx, bson.M{}, findOpts(q))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	out := []*listings.Contact{}
	for cur.Next(ctx) {
		var c listings.Contact
		if err := cur.Decode(&c); err != nil {
			return nil, 0, err
		}
		out = append(out, &c)
	}
	return out, total, cur.Err()
}
