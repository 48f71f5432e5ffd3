package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "banklar/internal/errors"
	"banklar/internal/ledger"
	"banklar/internal/models"
)

// StateVersion tags exported state payloads. Importers accept older payloads
// and migrate them forward.
const StateVersion = "v6"

// StateSettings is the settings section of a state payload.
type StateSettings struct {
	LowThreshold int64  `json:"lowThreshold"`
	Currency     string `json:"currency"`
}

// StateMeta carries the payload bookkeeping fields.
type StateMeta struct {
	LastUpdated int64  `json:"lastUpdated"`
	Version     string `json:"version"`
	ExportedAt  string `json:"exportedAt"`
}

// StatePayload is the full portable application state. Transactions keep
// their original order; on import that order becomes the tie-break for
// same-timestamp replay.
type StatePayload struct {
	User         *models.Profile      `json:"user"`
	Transactions []models.Transaction `json:"transactions"`
	Budgets      map[string]int64     `json:"budgets"`
	Settings     StateSettings        `json:"settings"`
	Meta         StateMeta            `json:"meta"`
}

// portabilityService handles full-state export and import.
type portabilityService struct {
	db             *gorm.DB
	profileService ProfileServicer
	budgetService  BudgetServicer
}

// NewPortabilityService creates a new PortabilityServicer.
func NewPortabilityService(db *gorm.DB, profileService ProfileServicer, budgetService BudgetServicer) PortabilityServicer {
	return &portabilityService{db: db, profileService: profileService, budgetService: budgetService}
}

// ExportState assembles the complete portable state.
func (s *portabilityService) ExportState() (*StatePayload, error) {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}

	settings, err := s.profileService.GetSettings()
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetService.GetBudgets()
	if err != nil {
		return nil, err
	}
	ceilings := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		ceilings[b.Category] = b.Amount
	}

	now := time.Now()
	lastUpdated := int64(0)
	for i := range snap.records {
		if snap.records[i].Timestamp > lastUpdated {
			lastUpdated = snap.records[i].Timestamp
		}
	}

	return &StatePayload{
		User:         snap.profile,
		Transactions: snap.records,
		Budgets:      ceilings,
		Settings: StateSettings{
			LowThreshold: settings.LowThreshold,
			Currency:     settings.Currency,
		},
		Meta: StateMeta{
			LastUpdated: lastUpdated,
			Version:     StateVersion,
			ExportedAt:  now.Format(time.RFC3339),
		},
	}, nil
}

// ExportCSV renders the transaction log as a spreadsheet-friendly file with
// Spanish column headers and human bucket labels.
func (s *portabilityService) ExportCSV() ([]byte, error) {
	snap, err := loadSnapshot(s.db)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Fecha", "Hora", "Tipo", "Monto", "Cuenta/Origen", "Destino", "Categoría/Origen", "Descripción"}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range snap.records {
		if err := w.Write(csvRow(&snap.records[i])); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}

func csvRow(t *models.Transaction) []string {
	var kind, origin, destination, detail string

	switch ledger.Kind(t.Kind) {
	case ledger.KindIncome:
		kind = "Ingreso"
		origin = ledger.Bucket(t.Account).Label()
		detail = t.Source
	case ledger.KindExpense:
		kind = "Gasto"
		origin = ledger.Bucket(t.Account).Label()
		detail = t.Category
	case ledger.KindTransfer:
		kind = "Transferencia"
		origin = ledger.Bucket(t.From).Label()
		destination = ledger.Bucket(t.To).Label()
	case ledger.KindCashConversion:
		kind = "Conversión"
		origin = ledger.Bucket(t.From).Label()
		destination = ledger.Bucket(t.To).Label()
	default:
		kind = t.Kind
	}

	when := time.UnixMilli(t.Timestamp)
	return []string{
		when.Format("2006-01-02"),
		when.Format("15:04"),
		kind,
		strconv.FormatInt(t.Amount, 10),
		origin,
		destination,
		detail,
		t.Description,
	}
}

// Import replaces the whole application state with the payload. A payload
// without a user or a transactions array is rejected outright. Legacy records
// that predate millisecond timestamps are migrated from their date string.
// The swap is atomic: on any failure the previous state survives intact.
func (s *portabilityService) Import(data []byte) error {
	var payload StatePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return apperrors.Wrap(apperrors.ErrMalformedImport, err)
	}
	if payload.User == nil || payload.Transactions == nil {
		return apperrors.WithMessage(apperrors.ErrMalformedImport, "payload must include user and transactions")
	}

	for i := range payload.Transactions {
		migrateRecord(&payload.Transactions[i])
	}

	// Reject payloads whose records do not form a valid log.
	if _, err := models.Entries(payload.Transactions); err != nil {
		return apperrors.Wrap(apperrors.ErrMalformedImport, err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Transaction{}, &models.Budget{}, &models.Settings{}, &models.Profile{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		profile := *payload.User
		profile.ID = 0
		if err := tx.Create(&profile).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for i := range payload.Transactions {
			record := payload.Transactions[i]
			// Fresh seq values preserve the payload order as insertion order.
			record.Seq = 0
			if err := tx.Create(&record).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		for category, amount := range payload.Budgets {
			if category == "" || amount <= 0 {
				continue
			}
			if err := tx.Create(&models.Budget{Category: category, Amount: amount}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		settings := models.Settings{
			LowThreshold: payload.Settings.LowThreshold,
			Currency:     payload.Settings.Currency,
		}
		// Payloads without a settings section fall back to the defaults.
		if payload.Settings == (StateSettings{}) {
			settings.LowThreshold = 20000
		}
		if settings.Currency == "" {
			settings.Currency = "COP"
		}
		if err := tx.Create(&settings).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return nil
	})
}

// migrateRecord fills fields that older payload versions lack. Records with
// only a date string get a midnight timestamp adjusted by their hour and
// minute fields when present.
func migrateRecord(t *models.Transaction) {
	if t.Timestamp == 0 && t.Date != "" {
		if day, err := time.ParseInLocation("2006-01-02", t.Date, time.Local); err == nil {
			t.Timestamp = day.Add(time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute).UnixMilli()
		}
	}
	when := time.UnixMilli(t.Timestamp)
	if t.Date == "" {
		t.Date = when.Format("2006-01-02")
	}
	if t.Hour == 0 && t.Minute == 0 {
		t.Hour = when.Hour()
		t.Minute = when.Minute()
	}
}
