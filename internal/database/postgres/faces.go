package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/eventlens/eventlens/internal/database"
	"github.com/eventlens/eventlens/internal/match"
)

// FaceRepository provides PostgreSQL-backed face storage with optional in-memory HNSW index.
type FaceRepository struct {
	pool          *Pool
	hnswIndex     *database.HNSWIndex
	hnswEnabled   bool
	hnswIndexPath string // Path to persist HNSW index (optional)
	hnswMu        sync.RWMutex
}

// NewFaceRepository creates a new PostgreSQL face repository.
func NewFaceRepository(pool *Pool) *FaceRepository {
	return &FaceRepository{pool: pool}
}

const faceColumns = `id, photo_uid, face_index, encoding, embedding,
       region_top, region_right, region_bottom, region_left,
       detector, model, dim, created_at`

// GetFaces retrieves all faces for a photo.
func (r *FaceRepository) GetFaces(ctx context.Context, photoUID string) ([]database.StoredFace, error) {
	query := `
		SELECT ` + faceColumns + `
		FROM faces
		WHERE photo_uid = $1
		ORDER BY face_index
	`

	rows, err := r.pool.Query(ctx, query, photoUID)
	if err != nil {
		return nil, fmt.Errorf("query faces: %w", err)
	}
	defer rows.Close()

	return scanFaces(rows)
}

// HasFaces checks if faces have been computed for a photo.
func (r *FaceRepository) HasFaces(ctx context.Context, photoUID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM faces WHERE photo_uid = $1)", photoUID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check faces exists: %w", err)
	}
	return exists, nil
}

// IsFacesProcessed checks if face detection has been run for a photo.
// The flag lives on the photo row so "no faces found" is distinguishable
// from "never processed".
func (r *FaceRepository) IsFacesProcessed(ctx context.Context, photoUID string) (bool, error) {
	var processed bool
	err := r.pool.QueryRow(
		ctx, "SELECT COALESCE((SELECT faces_processed FROM photos WHERE uid = $1), FALSE)", photoUID,
	).Scan(&processed)
	if err != nil {
		return false, fmt.Errorf("check faces processed: %w", err)
	}
	return processed, nil
}

// Count returns the total number of faces stored.
func (r *FaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM faces").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count faces: %w", err)
	}
	return count, nil
}

// CountPhotos returns the number of distinct photos with faces.
func (r *FaceRepository) CountPhotos(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(DISTINCT photo_uid) FROM faces").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// SearchCandidates returns matcher candidates pre-filtered by distance to the
// query embedding, nearest first. The in-memory HNSW index narrows the
// candidate set when enabled; otherwise pgvector does the distance scan.
// Candidate PhotoURL carries the stored media path; the web layer maps it
// to a public URL.
func (r *FaceRepository) SearchCandidates(
	ctx context.Context, embedding []float32, eventUID string, limit int, maxDistance float64,
) ([]match.Candidate, error) {
	if limit <= 0 {
		limit = database.DefaultCandidateLimit
	}

	if r.isHNSWEnabled() {
		return r.searchCandidatesHNSW(ctx, embedding, eventUID, limit, maxDistance)
	}
	return r.searchCandidatesPostgres(ctx, embedding, eventUID, limit, maxDistance)
}

// searchCandidatesHNSW resolves the nearest face IDs from the in-memory index
// and joins their photo and event data in one query.
func (r *FaceRepository) searchCandidatesHNSW(
	ctx context.Context, embedding []float32, eventUID string, limit int, maxDistance float64,
) ([]match.Candidate, error) {
	faces, _, err := r.findSimilarWithDistanceHNSW(embedding, limit, maxDistance)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(faces))
	for i := range faces {
		ids[i] = faces[i].ID
	}

	query := `
		SELECT f.id, f.photo_uid, f.encoding, p.path, e.uid, e.name
		FROM faces f
		JOIN photos p ON p.uid = f.photo_uid
		JOIN events e ON e.uid = p.event_uid
		WHERE f.id = ANY($1)
	`
	args := []any{pq.Array(ids)}
	if eventUID != "" {
		query += " AND e.uid = $2"
		args = append(args, eventUID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates by id: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]match.Candidate, len(ids))
	for rows.Next() {
		var c match.Candidate
		if err := rows.Scan(&c.FaceID, &c.PhotoUID, &c.Encoding, &c.PhotoURL, &c.EventUID, &c.EventName); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		byID[c.FaceID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	// Preserve the index's nearest-first order. IDs missing from the map were
	// filtered out by the event restriction.
	candidates := make([]match.Candidate, 0, len(byID))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// searchCandidatesPostgres runs the distance filter inside PostgreSQL using
// the pgvector index.
func (r *FaceRepository) searchCandidatesPostgres(
	ctx context.Context, embedding []float32, eventUID string, limit int, maxDistance float64,
) ([]match.Candidate, error) {
	tx, err := r.pool.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", database.HNSWEfSearch)); err != nil {
		return nil, fmt.Errorf("set ef_search: %w", err)
	}

	query := `
		SELECT f.id, f.photo_uid, f.encoding, p.path, e.uid, e.name
		FROM faces f
		JOIN photos p ON p.uid = f.photo_uid
		JOIN events e ON e.uid = p.event_uid
		WHERE f.embedding <-> $1::vector <= $2
	`
	args := []any{pgvector.NewVector(embedding), maxDistance}
	if eventUID != "" {
		query += " AND e.uid = $3"
		args = append(args, eventUID)
	}
	query += fmt.Sprintf(" ORDER BY f.embedding <-> $1::vector LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []match.Candidate
	for rows.Next() {
		var c match.Candidate
		if err := rows.Scan(&c.FaceID, &c.PhotoUID, &c.Encoding, &c.PhotoURL, &c.EventUID, &c.EventName); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

// FindSimilarWithDistance finds similar faces by Euclidean distance and returns distances.
// Uses the in-memory HNSW index if enabled, otherwise falls back to PostgreSQL.
func (r *FaceRepository) FindSimilarWithDistance(
	ctx context.Context, embedding []float32, limit int, maxDistance float64,
) ([]database.StoredFace, []float64, error) {
	r.hnswMu.RLock()
	hnswEnabled := r.hnswEnabled && r.hnswIndex != nil
	r.hnswMu.RUnlock()

	if hnswEnabled {
		return r.findSimilarWithDistanceHNSW(embedding, limit, maxDistance)
	}

	return r.findSimilarWithDistancePostgres(ctx, embedding, limit, maxDistance)
}

// findSimilarWithDistanceHNSW uses the in-memory HNSW index for similarity search.
func (r *FaceRepository) findSimilarWithDistanceHNSW(
	embedding []float32, limit int, maxDistance float64,
) ([]database.StoredFace, []float64, error) {
	r.hnswMu.RLock()
	defer r.hnswMu.RUnlock()

	if r.hnswIndex == nil {
		return nil, nil, errors.New("HNSW index not initialized")
	}

	// Request more candidates to ensure we have enough after distance filtering.
	searchK := limit * database.HNSWSearchMultiplier
	searchK = max(searchK, 100) // Minimum search size for better recall

	ids, distances, err := r.hnswIndex.Search(embedding, searchK)
	if err != nil {
		return nil, nil, fmt.Errorf("HNSW search: %w", err)
	}

	results := make([]database.StoredFace, 0, limit)
	distancesOut := make([]float64, 0, limit)

	for i, id := range ids {
		if distances[i] > maxDistance {
			continue
		}
		sf := r.hnswIndex.GetFace(id)
		if sf == nil {
			continue
		}
		results = append(results, *sf)
		distancesOut = append(distancesOut, distances[i])
		if len(results) >= limit {
			break
		}
	}

	return results, distancesOut, nil
}

// findSimilarWithDistancePostgres uses pgvector with ef_search optimization.
func (r *FaceRepository) findSimilarWithDistancePostgres(
	ctx context.Context, embedding []float32, limit int, maxDistance float64,
) ([]database.StoredFace, []float64, error) {
	tx, err := r.pool.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Set ef_search to match the in-memory HNSW configuration.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", database.HNSWEfSearch)); err != nil {
		return nil, nil, fmt.Errorf("set ef_search: %w", err)
	}

	query := `
		SELECT ` + faceColumns + `,
		       embedding <-> $1::vector AS distance
		FROM faces
		WHERE embedding <-> $1::vector <= $2
		ORDER BY distance
		LIMIT $3
	`

	vec := pgvector.NewVector(embedding)
	rows, err := tx.QueryContext(ctx, query, vec, maxDistance, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("query similar faces: %w", err)
	}
	defer rows.Close()

	var faces []database.StoredFace
	var distances []float64

	for rows.Next() {
		sf, dist, err := scanFaceWithDistance(rows)
		if err != nil {
			return nil, nil, err
		}
		faces = append(faces, sf)
		distances = append(distances, dist)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate faces: %w", err)
	}

	return faces, distances, nil
}

// isHNSWEnabled checks whether the HNSW index is active.
func (r *FaceRepository) isHNSWEnabled() bool {
	r.hnswMu.RLock()
	defer r.hnswMu.RUnlock()
	return r.hnswEnabled && r.hnswIndex != nil
}

// SaveFaces stores multiple faces for a photo, replacing any existing faces,
// and marks the photo processed with the face count.
func (r *FaceRepository) SaveFaces(ctx context.Context, photoUID string, faces []database.StoredFace) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	hnswEnabled := r.isHNSWEnabled()

	var oldFaceIDs []int64
	if hnswEnabled {
		oldFaceIDs, err = scanFaceIDs(tx, ctx, photoUID)
		if err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM faces WHERE photo_uid = $1", photoUID); err != nil {
		return fmt.Errorf("delete existing faces: %w", err)
	}

	insertedFaces, err := insertFacesReturningIDs(ctx, tx, photoUID, faces)
	if err != nil {
		return err
	}

	if err := markProcessedTx(ctx, tx, photoUID, len(faces)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	r.updateHNSWFaces(hnswEnabled, oldFaceIDs, insertedFaces)
	return nil
}

// insertFacesReturningIDs inserts faces into the database and returns them with assigned IDs.
func insertFacesReturningIDs(
	ctx context.Context, tx *sql.Tx, photoUID string, faces []database.StoredFace,
) ([]database.StoredFace, error) {
	insertedFaces := make([]database.StoredFace, 0, len(faces))

	for i := range faces {
		sf := &faces[i]
		vec := pgvector.NewVector(sf.Embedding)

		var newID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO faces (photo_uid, face_index, encoding, embedding,
			                   region_top, region_right, region_bottom, region_left,
			                   detector, model, dim)
			VALUES ($1, $2, $3, $4::vector, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`,
			photoUID,
			sf.FaceIndex,
			sf.Encoding,
			vec,
			sf.Region.Top,
			sf.Region.Right,
			sf.Region.Bottom,
			sf.Region.Left,
			sf.Detector,
			sf.Model,
			sf.Dim,
		).Scan(&newID)
		if err != nil {
			return nil, fmt.Errorf("insert face %d: %w", sf.FaceIndex, err)
		}

		newFace := *sf
		newFace.ID = newID
		newFace.PhotoUID = photoUID
		insertedFaces = append(insertedFaces, newFace)
	}

	return insertedFaces, nil
}

func markProcessedTx(ctx context.Context, tx *sql.Tx, photoUID string, faceCount int) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE photos SET faces_processed = TRUE, face_count = $2
		WHERE uid = $1
	`, photoUID, faceCount); err != nil {
		return fmt.Errorf("mark faces processed: %w", err)
	}
	return nil
}

// updateHNSWFaces removes old face IDs and adds new faces to the HNSW index.
func (r *FaceRepository) updateHNSWFaces(hnswEnabled bool, oldIDs []int64, newFaces []database.StoredFace) {
	if !hnswEnabled {
		return
	}
	r.hnswMu.Lock()
	for _, id := range oldIDs {
		r.hnswIndex.Delete(id)
	}
	for i := range newFaces {
		r.hnswIndex.Add(&newFaces[i])
	}
	r.hnswMu.Unlock()
}

// MarkFacesProcessed marks a photo as having been processed for face detection.
func (r *FaceRepository) MarkFacesProcessed(ctx context.Context, photoUID string, faceCount int) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE photos SET faces_processed = TRUE, face_count = $2
		WHERE uid = $1
	`, photoUID, faceCount); err != nil {
		return fmt.Errorf("mark faces processed: %w", err)
	}
	return nil
}

// DeleteFacesByPhoto removes all faces for a photo and clears its processed flag.
// Returns the deleted face IDs for HNSW cleanup.
func (r *FaceRepository) DeleteFacesByPhoto(ctx context.Context, photoUID string) ([]int64, error) {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Get face IDs before deleting (for HNSW cleanup).
	faceIDs, err := scanFaceIDs(tx, ctx, photoUID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM faces WHERE photo_uid = $1", photoUID); err != nil {
		return nil, fmt.Errorf("delete faces: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE photos SET faces_processed = FALSE, face_count = 0
		WHERE uid = $1
	`, photoUID); err != nil {
		return nil, fmt.Errorf("clear processed flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	if r.isHNSWEnabled() {
		r.hnswMu.Lock()
		for _, id := range faceIDs {
			r.hnswIndex.Delete(id)
		}
		r.hnswMu.Unlock()
	}

	return faceIDs, nil
}

// GetAllFaces retrieves all faces from the database.
func (r *FaceRepository) GetAllFaces(ctx context.Context) ([]database.StoredFace, error) {
	query := `
		SELECT ` + faceColumns + `
		FROM faces
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all faces: %w", err)
	}
	defer rows.Close()

	return scanFaces(rows)
}

// tryLoadFaceIndex attempts to load the face HNSW index from disk.
// Returns true if the index was loaded successfully and matches the database.
func (r *FaceRepository) tryLoadFaceIndex(indexPath string, dbFaceCount, dbMaxFaceID int64) bool {
	metadata, metaErr := database.LoadHNSWMetadata(indexPath)
	if metaErr != nil {
		fmt.Printf("Face index: metadata file error: %v (will rebuild)\n", metaErr)
		return false
	}
	if metadata.FaceCount != dbFaceCount || metadata.MaxFaceID != dbMaxFaceID {
		fmt.Printf("Face index: stale (db: count=%d max_id=%d, cached: count=%d max_id=%d) (will rebuild)\n",
			dbFaceCount, dbMaxFaceID, metadata.FaceCount, metadata.MaxFaceID)
		return false
	}

	r.hnswIndex = database.NewHNSWIndex()
	if err := r.hnswIndex.LoadWithFaceMetadata(indexPath); err != nil {
		fmt.Printf("Face index: failed to load: %v (will rebuild)\n", err)
		return false
	}
	if r.hnswIndex.IsEmpty() {
		fmt.Printf("Face index: loaded graph is empty (will rebuild)\n")
		return false
	}
	fmt.Printf("Face index: loaded from disk\n")
	return true
}

// EnableHNSW loads or builds an in-memory HNSW index for O(log N) similarity search.
// If indexPath is provided, it will try to load from disk first and save after building.
// This should be called once at startup.
func (r *FaceRepository) EnableHNSW(ctx context.Context, indexPath string) error {
	r.hnswMu.Lock()
	defer r.hnswMu.Unlock()

	r.hnswIndexPath = indexPath

	var dbFaceCount, dbMaxFaceID int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*), COALESCE(MAX(id), 0) FROM faces").Scan(&dbFaceCount, &dbMaxFaceID)
	if err != nil {
		return fmt.Errorf("failed to get face stats: %w", err)
	}

	if indexPath != "" && r.tryLoadFaceIndex(indexPath, dbFaceCount, dbMaxFaceID) {
		r.hnswEnabled = true
		return nil
	}

	faces, err := r.GetAllFaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to load faces: %w", err)
	}

	r.hnswIndex = database.NewHNSWIndex()
	if err := r.hnswIndex.BuildFromFaces(faces); err != nil {
		return fmt.Errorf("failed to build HNSW index: %w", err)
	}

	if indexPath != "" && len(faces) > 0 {
		metadata := database.HNSWIndexMetadata{FaceCount: dbFaceCount, MaxFaceID: dbMaxFaceID}
		if err := r.hnswIndex.SaveWithFaceMetadata(indexPath, metadata); err != nil {
			fmt.Printf("Warning: failed to save HNSW index to disk: %v\n", err)
		}
	}

	r.hnswEnabled = true
	return nil
}

// DisableHNSW disables the in-memory HNSW index, falling back to PostgreSQL queries.
func (r *FaceRepository) DisableHNSW() {
	r.hnswMu.Lock()
	defer r.hnswMu.Unlock()
	r.hnswEnabled = false
	r.hnswIndex = nil
}

// IsHNSWEnabled returns whether the in-memory HNSW index is enabled.
func (r *FaceRepository) IsHNSWEnabled() bool {
	r.hnswMu.RLock()
	defer r.hnswMu.RUnlock()
	return r.hnswEnabled && r.hnswIndex != nil
}

// HNSWCount returns the number of faces in the HNSW index.
func (r *FaceRepository) HNSWCount() int {
	r.hnswMu.RLock()
	defer r.hnswMu.RUnlock()
	if r.hnswIndex == nil {
		return 0
	}
	return r.hnswIndex.Count()
}

// RebuildHNSW rebuilds the HNSW index from PostgreSQL data.
func (r *FaceRepository) RebuildHNSW(ctx context.Context) error {
	r.hnswMu.RLock()
	indexPath := r.hnswIndexPath
	r.hnswMu.RUnlock()
	return r.EnableHNSW(ctx, indexPath)
}

// SaveHNSWIndex saves the current HNSW index to disk (if path configured).
func (r *FaceRepository) SaveHNSWIndex() error {
	r.hnswMu.RLock()
	defer r.hnswMu.RUnlock()

	if r.hnswIndexPath == "" {
		return nil // No path configured, nothing to save
	}

	if r.hnswIndex == nil {
		return nil // No index to save
	}

	// Get current database stats for metadata.
	ctx := context.Background()
	var faceCount int64
	var maxFaceID int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*), COALESCE(MAX(id), 0) FROM faces").Scan(&faceCount, &maxFaceID)
	if err != nil {
		return fmt.Errorf("failed to get face stats: %w", err)
	}

	metadata := database.HNSWIndexMetadata{
		FaceCount: faceCount,
		MaxFaceID: maxFaceID,
	}

	if err := r.hnswIndex.SaveWithFaceMetadata(r.hnswIndexPath, metadata); err != nil {
		return fmt.Errorf("saving HNSW face index: %w", err)
	}

	return nil
}

// scanFaceIDs reads face IDs from a query and properly closes the rows.
func scanFaceIDs(tx *sql.Tx, ctx context.Context, photoUID string) ([]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM faces WHERE photo_uid = $1", photoUID)
	if err != nil {
		return nil, fmt.Errorf("query face IDs: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan face ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate face IDs: %w", err)
	}
	return ids, nil
}

// scanFaceRow scans a single row into a StoredFace, with optional extra scan
// destinations appended after the standard face columns (e.g., a distance column).
func scanFaceRow(scanner interface{ Scan(...any) error }, extraDest ...any) (database.StoredFace, error) {
	var sf database.StoredFace
	var vec pgvector.Vector
	var model sql.NullString

	dest := make([]any, 0, 13+len(extraDest))
	dest = append(dest,
		&sf.ID,
		&sf.PhotoUID,
		&sf.FaceIndex,
		&sf.Encoding,
		&vec,
		&sf.Region.Top,
		&sf.Region.Right,
		&sf.Region.Bottom,
		&sf.Region.Left,
		&sf.Detector,
		&model,
		&sf.Dim,
		&sf.CreatedAt,
	)
	dest = append(dest, extraDest...)

	if err := scanner.Scan(dest...); err != nil {
		return sf, fmt.Errorf("scan face: %w", err)
	}

	sf.Embedding = vec.Slice()
	if model.Valid {
		sf.Model = model.String
	}

	return sf, nil
}

func scanFaces(rows *sql.Rows) ([]database.StoredFace, error) {
	var faces []database.StoredFace
	for rows.Next() {
		sf, err := scanFaceRow(rows)
		if err != nil {
			return nil, err
		}
		faces = append(faces, sf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faces: %w", err)
	}
	return faces, nil
}

func scanFaceWithDistance(rows *sql.Rows) (database.StoredFace, float64, error) {
	var dist float64
	sf, err := scanFaceRow(rows, &dist)
	return sf, dist, err
}

// Verify interface compliance.
var _ database.FaceReader = (*FaceRepository)(nil)
var _ database.FaceWriter = (*FaceRepository)(nil)
