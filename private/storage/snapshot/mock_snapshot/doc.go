//go:generate mockgen -destination=snapshot.go -package=mock_snapshot github.com/ms1450/mini-internet-simulation/private/storage/snapshot Store

package mock_snapshot
