package services

import (
	"testing"

	"banklar/internal/config"
	"banklar/internal/models"
	"banklar/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		CashLowThreshold:    10000,
		DefaultLowThreshold: 20000,
		DefaultCurrency:     "COP",
	}
}

func TestSetupProfile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		profile, err := svc.SetupProfile("Laura", 100000, 50000, 0, 20000)
		testutil.AssertNoError(t, err)

		if profile.ID == 0 {
			t.Fatal("expected non-zero profile ID")
		}
		if profile.Nu != 100000 || profile.Nequi != 50000 || profile.Nequi2 != 0 || profile.Cash != 20000 {
			t.Errorf("unexpected opening balances %+v", profile)
		}

		// Settings are seeded atomically with the profile.
		var settings models.Settings
		testutil.AssertNoError(t, db.First(&settings).Error)
		if settings.LowThreshold != 20000 || settings.Currency != "COP" {
			t.Errorf("unexpected seeded settings %+v", settings)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		_, err := svc.SetupProfile("", 0, 0, 0, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		_, err := svc.SetupProfile("Laura", -1, 0, 0, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("second_setup_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		_, err := svc.SetupProfile("Laura", 100, 0, 0, 0)
		testutil.AssertNoError(t, err)

		_, err = svc.SetupProfile("Laura again", 200, 0, 0, 0)
		testutil.AssertAppError(t, err, "PROFILE_EXISTS")
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("not_set_up", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		_, err := svc.GetProfile()
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})

	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())
		testutil.CreateTestProfile(t, db)

		profile, err := svc.GetProfile()
		testutil.AssertNoError(t, err)
		if profile.Nu != 100000 {
			t.Errorf("expected nu 100000, got %d", profile.Nu)
		}
	})
}

func TestSettings(t *testing.T) {
	t.Run("get_creates_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		settings, err := svc.GetSettings()
		testutil.AssertNoError(t, err)
		if settings.LowThreshold != 20000 || settings.Currency != "COP" {
			t.Errorf("unexpected defaults %+v", settings)
		}
	})

	t.Run("update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		settings, err := svc.UpdateSettings(50000, "USD")
		testutil.AssertNoError(t, err)
		if settings.LowThreshold != 50000 || settings.Currency != "USD" {
			t.Errorf("unexpected settings %+v", settings)
		}

		// Empty currency keeps the stored one.
		settings, err = svc.UpdateSettings(30000, "")
		testutil.AssertNoError(t, err)
		if settings.Currency != "USD" {
			t.Errorf("expected currency preserved, got %s", settings.Currency)
		}
	})

	t.Run("negative_threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProfileService(db, testConfig())

		_, err := svc.UpdateSettings(-1, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
