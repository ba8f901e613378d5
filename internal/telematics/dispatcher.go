package telematics

import (
	"context"
	"sync"
	"time"

	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/service"
)

const (
	maxStatePolls = 16
	pollInterval  = time.Second
)

// Dispatcher runs vehicle command sequences detached from the request that
// triggered them. A renter's check-out response never waits on vehicle
// hardware; failures are logged and the renter falls back to the key card.
type Dispatcher struct {
	commander service.VehicleCommander
	timeout   time.Duration

	wg sync.WaitGroup
}

func NewDispatcher(commander service.VehicleCommander, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		commander: commander,
		timeout:   timeout,
	}
}

// DispatchUnlock wakes the vehicle if needed and unlocks the doors.
func (d *Dispatcher) DispatchUnlock(agreementID int64, telematicsRef string) {
	d.dispatch(agreementID, telematicsRef, service.VehicleCommandUnlock)
}

// DispatchLock wakes the vehicle if needed and locks the doors.
func (d *Dispatcher) DispatchLock(agreementID int64, telematicsRef string) {
	d.dispatch(agreementID, telematicsRef, service.VehicleCommandLock)
}

func (d *Dispatcher) dispatch(agreementID int64, telematicsRef, command string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		d.run(ctx, agreementID, telematicsRef, command)
	}()
}

// run polls the vehicle state up to maxStatePolls times, one second apart.
// The first poll that reports the vehicle offline triggers a single wake
// request. The command is sent once the vehicle reports online, or after the
// polls are exhausted, since a command to a waking vehicle often still lands.
func (d *Dispatcher) run(ctx context.Context, agreementID int64, telematicsRef, command string) {
	log := logger.WithAgreement(agreementID)

	wakeSent := false
	for i := 0; i < maxStatePolls; i++ {
		state, err := d.commander.QueryState(ctx, telematicsRef)
		if err != nil {
			log.Warn("vehicle state poll failed", "vehicle_ref", telematicsRef, "attempt", i+1, "error", err)
		} else if state == service.VehicleStateOnline {
			break
		}

		if !wakeSent && state == service.VehicleStateOffline {
			if err := d.commander.Wake(ctx, telematicsRef); err != nil {
				log.Warn("vehicle wake failed", "vehicle_ref", telematicsRef, "error", err)
			}
			wakeSent = true
		}

		select {
		case <-ctx.Done():
			log.Warn("vehicle command abandoned", "vehicle_ref", telematicsRef, "command", command, "error", ctx.Err())
			return
		case <-time.After(pollInterval):
		}
	}

	if err := d.commander.SendCommand(ctx, telematicsRef, command); err != nil {
		log.Warn("vehicle command failed", "vehicle_ref", telematicsRef, "command", command, "error", err)
		return
	}
	log.Info("vehicle command sent", "vehicle_ref", telematicsRef, "command", command)
}

// Wait blocks until all in-flight command sequences finish. Used on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
