// auction/serial.go - serial-number resequencing
package auction

import (
	"context"
)

// Serial numbers form a dense presentation order. Whenever one is
// assigned, moved or cleared, neighbouring players shift by one so the
// sequence stays collision-free. Each shift is a single batch read
// followed by a single batch write inside the caller's transaction.
//
// Cases (old=O, new=N, both may be unset):
//   - clear (N unset):      serials > O shift down
//   - assign onto collision: serials >= N shift up
//   - move O < N:           serials in (O, N] shift down
//   - move O > N:           serials in [N, O) shift up
func resequenceSerials(ctx context.Context, s Store, playerID uint, oldSerial, newSerial *int) error {
	switch {
	case newSerial == nil && oldSerial == nil:
		return nil
	case newSerial == nil:
		return shiftSerials(ctx, s, SerialRange{Min: oldSerial, ExcludeID: playerID}, -1)
	case oldSerial == nil:
		taken, err := s.SerialTaken(ctx, *newSerial, playerID)
		if err != nil || !taken {
			return err
		}
		return shiftSerials(ctx, s, SerialRange{Min: newSerial, MinInclusive: true, ExcludeID: playerID}, +1)
	case *newSerial == *oldSerial:
		return nil
	case *newSerial > *oldSerial:
		return shiftSerials(ctx, s, SerialRange{
			Min: oldSerial, Max: newSerial, MaxInclusive: true, ExcludeID: playerID,
		}, -1)
	default:
		return shiftSerials(ctx, s, SerialRange{
			Min: newSerial, MinInclusive: true, Max: oldSerial, ExcludeID: playerID,
		}, +1)
	}
}

func shiftSerials(ctx context.Context, s Store, r SerialRange, delta int) error {
	players, err := s.PlayersInSerialRange(ctx, r)
	if err != nil {
		return err
	}
	updates := make([]SerialUpdate, 0, len(players))
	for _, p := range players {
		updates = append(updates, SerialUpdate{PlayerID: p.ID, SerialNumber: *p.SerialNumber + delta})
	}
	if len(updates) == 0 {
		return nil
	}
	return s.UpdateSerials(ctx, updates)
}
