package app

import (
	"fmt"

	"gocloud.dev/docstore"

	attendanceHTTP "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http"
	attendanceRepository "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/repository"
	attendanceService "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/service"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	"github.com/aru-nika-08/attendance-tracking-system/internal/database"
)

// DocstoreCollection returns the attendance document collection opened from DOCSTORE_URL.
func (c *Container) DocstoreCollection() (*docstore.Collection, error) {
	c.collectionInit.Do(func() {
		coll, err := attendanceRepository.OpenCollection(c.ctx, c.config.DocstoreURL)
		if err != nil {
			c.storeError("collection", err)
			return
		}
		c.collection = coll
	})
	if err := c.loadError("collection"); err != nil {
		return nil, err
	}
	return c.collection, nil
}

// AttendanceRepository returns the relational attendance repository for the
// configured database driver.
func (c *Container) AttendanceRepository() (attendanceUseCase.AttendanceRepository, error) {
	c.attendanceRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.storeError("attendanceRepository",
				fmt.Errorf("failed to get database for attendance repository: %w", err))
			return
		}

		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.attendanceRepository = attendanceRepository.NewMySQLAttendanceRepository(db)
		case database.DriverPostgres:
			c.attendanceRepository = attendanceRepository.NewPostgreSQLAttendanceRepository(db)
		default:
			c.storeError("attendanceRepository",
				fmt.Errorf("unsupported database driver: %s", c.config.DBDriver))
		}
	})
	if err := c.loadError("attendanceRepository"); err != nil {
		return nil, err
	}
	return c.attendanceRepository, nil
}

// AttendanceRecordRepository returns the attendance document repository.
func (c *Container) AttendanceRecordRepository() (attendanceUseCase.AttendanceRecordRepository, error) {
	c.attendanceRecordRepositoryInit.Do(func() {
		coll, err := c.DocstoreCollection()
		if err != nil {
			c.storeError("attendanceRecordRepository",
				fmt.Errorf("failed to get collection for attendance record repository: %w", err))
			return
		}
		c.attendanceRecordRepository = attendanceRepository.NewDocstoreAttendanceRecordRepository(coll)
	})
	if err := c.loadError("attendanceRecordRepository"); err != nil {
		return nil, err
	}
	return c.attendanceRecordRepository, nil
}

// AttendanceWriter returns the writer persisting both the row and the document.
func (c *Container) AttendanceWriter() (attendanceUseCase.AttendanceWriter, error) {
	c.attendanceWriterInit.Do(func() {
		var err error
		if c.attendanceWriter, err = c.initAttendanceWriter(); err != nil {
			c.storeError("attendanceWriter", err)
		}
	})
	if err := c.loadError("attendanceWriter"); err != nil {
		return nil, err
	}
	return c.attendanceWriter, nil
}

// FaceScorer returns the face scorer.
func (c *Container) FaceScorer() attendanceService.FaceScorer {
	c.faceScorerInit.Do(func() {
		c.faceScorer = attendanceService.NewSimulatedFaceScorer(c.config.FaceSimulationDelay, c.Logger())
	})
	return c.faceScorer
}

// AttendanceGate returns the attendance gate, wrapped with metrics.
func (c *Container) AttendanceGate() (attendanceUseCase.AttendanceGate, error) {
	c.attendanceGateInit.Do(func() {
		var err error
		if c.attendanceGate, err = c.initAttendanceGate(); err != nil {
			c.storeError("attendanceGate", err)
		}
	})
	if err := c.loadError("attendanceGate"); err != nil {
		return nil, err
	}
	return c.attendanceGate, nil
}

// AttendanceUseCase returns the attendance query use case, wrapped with metrics.
func (c *Container) AttendanceUseCase() (attendanceUseCase.AttendanceUseCase, error) {
	c.attendanceUseCaseInit.Do(func() {
		var err error
		if c.attendanceUseCase, err = c.initAttendanceUseCase(); err != nil {
			c.storeError("attendanceUseCase", err)
		}
	})
	if err := c.loadError("attendanceUseCase"); err != nil {
		return nil, err
	}
	return c.attendanceUseCase, nil
}

// SessionHandler returns the HTTP handler for QR redemption and scan sessions.
func (c *Container) SessionHandler() (*attendanceHTTP.SessionHandler, error) {
	c.sessionHandlerInit.Do(func() {
		gate, err := c.AttendanceGate()
		if err != nil {
			c.storeError("sessionHandler", fmt.Errorf("failed to get attendance gate for session handler: %w", err))
			return
		}
		c.sessionHandler = attendanceHTTP.NewSessionHandler(gate, c.Logger())
	})
	if err := c.loadError("sessionHandler"); err != nil {
		return nil, err
	}
	return c.sessionHandler, nil
}

// FaceHandler returns the HTTP handler for face verification.
func (c *Container) FaceHandler() (*attendanceHTTP.FaceHandler, error) {
	c.faceHandlerInit.Do(func() {
		gate, err := c.AttendanceGate()
		if err != nil {
			c.storeError("faceHandler", fmt.Errorf("failed to get attendance gate for face handler: %w", err))
			return
		}
		c.faceHandler = attendanceHTTP.NewFaceHandler(gate, c.Logger())
	})
	if err := c.loadError("faceHandler"); err != nil {
		return nil, err
	}
	return c.faceHandler, nil
}

// AttendanceHandler returns the HTTP handler for attendance writes and queries.
func (c *Container) AttendanceHandler() (*attendanceHTTP.AttendanceHandler, error) {
	c.attendanceHandlerInit.Do(func() {
		gate, err := c.AttendanceGate()
		if err != nil {
			c.storeError("attendanceHandler",
				fmt.Errorf("failed to get attendance gate for attendance handler: %w", err))
			return
		}
		useCase, err := c.AttendanceUseCase()
		if err != nil {
			c.storeError("attendanceHandler",
				fmt.Errorf("failed to get attendance use case for attendance handler: %w", err))
			return
		}
		c.attendanceHandler = attendanceHTTP.NewAttendanceHandler(
			gate,
			useCase,
			c.config.FrontendDashboardURL,
			c.Logger(),
		)
	})
	if err := c.loadError("attendanceHandler"); err != nil {
		return nil, err
	}
	return c.attendanceHandler, nil
}

func (c *Container) initAttendanceWriter() (attendanceUseCase.AttendanceWriter, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for attendance writer: %w", err)
	}

	attendanceRepo, err := c.AttendanceRepository()
	if err != nil {
		return nil, err
	}

	recordRepo, err := c.AttendanceRecordRepository()
	if err != nil {
		return nil, err
	}

	return attendanceUseCase.NewAttendanceWriter(txManager, attendanceRepo, recordRepo), nil
}

func (c *Container) initAttendanceGate() (attendanceUseCase.AttendanceGate, error) {
	verifier, err := c.TokenVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get token verifier for attendance gate: %w", err)
	}

	sessionStore, err := c.SessionStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get session store for attendance gate: %w", err)
	}

	writer, err := c.AttendanceWriter()
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance writer for attendance gate: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for attendance gate: %w", err)
	}

	gate := attendanceUseCase.NewAttendanceGate(
		verifier,
		sessionStore,
		c.FaceScorer(),
		writer,
		c.config.FaceConfidenceThreshold,
		c.config.FacePresentThreshold,
		c.Logger(),
	)
	return attendanceUseCase.NewAttendanceGateWithMetrics(gate, bm), nil
}

func (c *Container) initAttendanceUseCase() (attendanceUseCase.AttendanceUseCase, error) {
	attendanceRepo, err := c.AttendanceRepository()
	if err != nil {
		return nil, err
	}

	recordRepo, err := c.AttendanceRecordRepository()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for attendance use case: %w", err)
	}

	return attendanceUseCase.NewAttendanceUseCaseWithMetrics(
		attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo),
		bm,
	), nil
}
