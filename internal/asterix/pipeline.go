package asterix

import (
	"context"
	"errors"
	"math"

	"asterixdecode/internal/bitio"
	"asterixdecode/internal/geo"
	"asterixdecode/internal/qnh"
	"asterixdecode/internal/record"
)

const nmToMeters = 1852.0

// Options configures a DecodeStream run.
type Options struct {
	// RadarStation, if set, enables CAT048 polar-to-WGS84 conversion.
	RadarStation *geo.Station
	// QNH, if set, enables barometric altitude correction below
	// TransitionAltitudeFt.
	QNH *float64
	// TransitionAltitudeFt overrides qnh.DefaultTransitionAltitudeFt when
	// non-zero.
	TransitionAltitudeFt float64
	// Strict aborts the whole run on the first Diagnostic instead of
	// emitting it on the result channel and continuing at the next block.
	Strict bool
}

// Result is one item off a DecodeStream channel: either a fully assembled
// record, or a Diagnostic describing why one could not be produced.
type Result struct {
	Record     *record.UnifiedRecord
	Diagnostic *Diagnostic
}

// DecodeStream drives a BlockReader over data, dispatching each block to its
// registered CategoryDecoder and streaming assembled records.
//
// Grounded on internal/app/application.go's processIQData orchestration
// shape (a driving loop over one producer, ctx/cancel cooperative
// cancellation between iterations) and its channel-based streaming
// (dataChan := make(chan []byte, 100)), adapted from a fixed-size I/Q
// sample channel to a decode-result channel.
//
// In non-strict mode DecodeStream returns immediately with a channel fed by
// a background goroutine; an UNSUPPORTED_CATEGORY or record-level
// Diagnostic skips to the next block, while a SHORT_BLOCK or BAD_LENGTH
// framing Diagnostic ends the run after it is sent, because no later block
// boundary can be located. In strict mode the whole run happens synchronously and
// the first Diagnostic is returned as a *StrictError, since a channel
// cannot carry a synchronous "stop everything now" signal the way a direct
// error return can.
func DecodeStream(ctx context.Context, data []byte, decoders map[int]CategoryDecoder, opts Options) (<-chan Result, error) {
	transitionFt := opts.TransitionAltitudeFt
	if transitionFt == 0 {
		transitionFt = qnh.DefaultTransitionAltitudeFt
	}
	corrector := qnh.New(transitionFt)

	var transformer *geo.Transformer
	if opts.RadarStation != nil {
		transformer = geo.NewTransformer(*opts.RadarStation)
	}

	if opts.Strict {
		results, err := runStrict(ctx, data, decoders, transformer, corrector, opts.QNH)
		if err != nil {
			return nil, err
		}
		out := make(chan Result, len(results))
		for _, r := range results {
			out <- r
		}
		close(out)
		return out, nil
	}

	out := make(chan Result, 16)
	go runStreaming(ctx, data, decoders, transformer, corrector, opts.QNH, out)
	return out, nil
}

// item is one decode step's outcome: exactly one of rec/diag is set.
type item struct {
	rec  *record.UnifiedRecord
	diag *Diagnostic
}

// walk runs the shared block/record decode loop, invoking emit for every
// produced record or Diagnostic. emit returns false to stop the walk early
// (used by both the strict collector and the streaming channel sender).
func walk(ctx context.Context, data []byte, decoders map[int]CategoryDecoder, transformer *geo.Transformer, corrector qnh.Corrector, qnhVal *float64, emit func(item) bool) error {
	reader := NewBlockReader(data)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		block, ok, err := reader.Next()
		if err != nil {
			var diag Diagnostic
			if errors.As(err, &diag) {
				emit(item{diag: &diag})
			}
			return err
		}
		if !ok {
			return nil
		}

		decoder, known := decoders[block.Category]
		if !known {
			diag := newDiagnostic(ErrUnsupportedCategory, block.Offset, intPtr(block.Category), nil,
				"no registered category decoder")
			if !emit(item{diag: &diag}) {
				return nil
			}
			continue
		}

		cursor := bitio.New(block.Payload)
		for cursor.Remaining() > 0 {
			partial, derr := decoder.DecodeRecord(cursor, block.Offset)
			if derr != nil {
				var diag Diagnostic
				if errors.As(derr, &diag) {
					if !emit(item{diag: &diag}) {
						return nil
					}
				}
				// Lost sync mid-block: record boundaries are only known by
				// successfully decoding through them, so the rest of this
				// block cannot be trusted. Resume at the next block.
				break
			}

			unified := assemble(partial, transformer, corrector, qnhVal)
			if !emit(item{rec: &unified}) {
				return nil
			}
		}
	}
}

func assemble(partial record.PartialRecord, transformer *geo.Transformer, corrector qnh.Corrector, qnhVal *float64) record.UnifiedRecord {
	var geoResult *geo.Result
	if partial.Category == 48 && transformer != nil && partial.RhoNM != nil && partial.ThetaDeg != nil {
		rhoM := *partial.RhoNM * nmToMeters
		azimuthRad := *partial.ThetaDeg * math.Pi / 180.0
		// The Python original's public polar_to_wgs84 entry point defaults
		// elevation to 0 degrees; CAT048 records carry no elevation item of
		// their own, so this decoder does the same.
		if res, gerr := transformer.ToWGS84(rhoM, azimuthRad, 0); gerr == nil {
			geoResult = &res
		}
	}

	var qnhResult *qnh.Result
	if partial.FlightLevel != nil {
		pressureAltFt := *partial.FlightLevel * 100.0
		res := corrector.Correct(pressureAltFt, qnhVal)
		qnhResult = &res
	}

	return record.Assemble(partial, geoResult, qnhResult)
}

func runStrict(ctx context.Context, data []byte, decoders map[int]CategoryDecoder, transformer *geo.Transformer, corrector qnh.Corrector, qnhVal *float64) ([]Result, error) {
	var results []Result
	var firstErr error

	err := walk(ctx, data, decoders, transformer, corrector, qnhVal, func(it item) bool {
		if it.diag != nil {
			firstErr = &StrictError{Diagnostic: *it.diag}
			return false
		}
		results = append(results, Result{Record: it.rec})
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func runStreaming(ctx context.Context, data []byte, decoders map[int]CategoryDecoder, transformer *geo.Transformer, corrector qnh.Corrector, qnhVal *float64, out chan<- Result) {
	defer close(out)

	_ = walk(ctx, data, decoders, transformer, corrector, qnhVal, func(it item) bool {
		select {
		case out <- Result{Record: it.rec, Diagnostic: it.diag}:
			return true
		case <-ctx.Done():
			return false
		}
	})
}
