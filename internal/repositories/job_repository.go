package repositories

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pathpilot_backend/internal/jobsource"
	"pathpilot_backend/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	// Upsert deduplicates by (title, company): an existing record is
	// returned unchanged, first write wins.
	Upsert(raw jobsource.RawJob, source string) (*models.Job, error)
	// FindByIdentityKey looks up a job by the same normalized
	// (title, company) key Upsert deduplicates on.
	FindByIdentityKey(title, company string) (*models.Job, error)
	FindByID(id int64) (*models.Job, error)
	FindByIDs(ids []int64) (map[int64]models.Job, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

// normalizeJobIdentity applies the placeholder defaults and returns the
// dedup key for a (title, company) pair.
func normalizeJobIdentity(rawTitle, rawCompany string) (title, company, key string) {
	title = strings.TrimSpace(rawTitle)
	if title == "" {
		title = "Job"
	}
	company = strings.TrimSpace(rawCompany)
	if company == "" {
		company = "Company"
	}
	return title, company, models.JobIdentityKey(title, company)
}

func (r *JobRepositoryImpl) Upsert(raw jobsource.RawJob, source string) (*models.Job, error) {
	title, company, key := normalizeJobIdentity(raw.Title, raw.Company)

	if existing, err := r.findByKey(key); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrJobNotFound) {
		return nil, err
	}

	rawJSON, _ := json.Marshal(raw)
	job := models.Job{
		Title:         title,
		Company:       company,
		Location:      strings.TrimSpace(raw.Location),
		Description:   raw.Description,
		ApplyURL:      raw.ApplyURL,
		Source:        source,
		IdentityKey:   key,
		RawAttributes: rawJSON,
	}

	if err := r.db.Create(&job).Error; err != nil {
		// Параллельная вставка с тем же ключом: уникальный индекс
		// отбил дубликат, перечитываем победителя
		if existing, ferr := r.findByKey(key); ferr == nil {
			return existing, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIdentityKey(title, company string) (*models.Job, error) {
	_, _, key := normalizeJobIdentity(title, company)
	return r.findByKey(key)
}

func (r *JobRepositoryImpl) findByKey(key string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "identity_key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByID(id int64) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByIDs(ids []int64) (map[int64]models.Job, error) {
	if len(ids) == 0 {
		return map[int64]models.Job{}, nil
	}

	var jobs []models.Job
	if err := r.db.Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}

	out := make(map[int64]models.Job, len(jobs))
	for _, j := range jobs {
		out[j.ID] = j
	}
	return out, nil
}
