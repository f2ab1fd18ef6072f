package maxcompute

import (
	"github.com/aliyun/aliyun-odps-go-sdk/odps"
	"github.com/pkg/errors"

	"github.com/goto/wrangler/internal/logger"
)

// SetupFn wires one concern into a Session.
type SetupFn func(s *Session) error

// SetupLogger installs a text logger at the given level.
func SetupLogger(logLevel string) SetupFn {
	return func(s *Session) error {
		l, err := logger.NewLogger(logLevel)
		if err != nil {
			return errors.WithStack(err)
		}
		s.logger = l
		return nil
	}
}

// SetupODPSClient installs the native client used for executing statements
// and reading table metadata.
func SetupODPSClient(conf *odps.Config) SetupFn {
	return func(s *Session) error {
		s.OdpsClient = NewODPSClient(s.logger, conf.GenOdps())
		return nil
	}
}

// SetupDBProvider installs the database/sql access path used by ReadSQL. The
// pools it opens are closed together with the session.
func SetupDBProvider(conf *odps.Config) SetupFn {
	return func(s *Session) error {
		p := NewDBProvider(conf)
		s.DBProvider = p
		s.shutdownFns = append(s.shutdownFns, p.Close)
		return nil
	}
}

// SetupLoader installs the load strategy used by InsertInto.
func SetupLoader(loadMethod string) SetupFn {
	return func(s *Session) error {
		l, err := NewLoader(loadMethod, s.logger)
		if err != nil {
			return errors.WithStack(err)
		}
		s.Loader = l
		return nil
	}
}

// SetupOTelSDK starts metric export to the given collector endpoint. A blank
// endpoint disables it.
func SetupOTelSDK(collectorGRPCEndpoint string, attributes map[string]string) SetupFn {
	return func(s *Session) error {
		if collectorGRPCEndpoint == "" {
			return nil
		}
		shutdownFn, err := setupOTelSDK(s.appCtx, collectorGRPCEndpoint, attributes)
		if err != nil {
			return errors.WithStack(err)
		}
		s.shutdownFns = append(s.shutdownFns, shutdownFn)
		return nil
	}
}
