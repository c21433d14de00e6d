package svc

import (
	"context"

	bridgecommon "github.com/anyswap/CrossChain-Bridge/common"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/streakbeast/beastcore/cache"
	"github.com/streakbeast/beastcore/config"
	"github.com/streakbeast/beastcore/contract"
	"github.com/streakbeast/beastcore/dao"
	"github.com/streakbeast/beastcore/engine"
	"github.com/streakbeast/beastcore/logger/xzap"
	"github.com/streakbeast/beastcore/stores/gdb"
)

type ServerCtx struct {
	C        *config.Config
	Dao      *dao.Dao
	Ledger   *engine.Ledger
	Cache    *cache.Cache
	Treasury *contract.TreasuryContract
}

func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	owner, err := ParseAddress(c.Ledger.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "ledger.owner")
	}
	agent, err := ParseAddress(c.Ledger.Agent)
	if err != nil {
		return nil, errors.Wrap(err, "ledger.agent")
	}

	db, err := gdb.NewDB(c.DB)
	if err != nil {
		return nil, err
	}
	d := dao.New(context.Background(), db)
	if err := d.AutoMigrate(); err != nil {
		return nil, err
	}

	rdb, err := cache.New(context.Background(), c.Redis)
	if err != nil {
		return nil, err
	}

	ledger, err := engine.New(owner, agent, engine.WithEventSink(logSink{}))
	if err != nil {
		return nil, err
	}

	// Rebuild ledger state from the mirror tables if a previous run left any.
	snap, found, err := d.BuildSnapshot(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "load snapshot")
	}
	if found {
		if err := ledger.Restore(snap); err != nil {
			return nil, errors.Wrap(err, "restore ledger")
		}
		xzap.WithContext(context.Background()).Info("ledger state restored",
			zap.Int("habits", len(snap.Habits)),
			zap.Int("pools", len(snap.Pools)),
			zap.Int("rewards", len(snap.Rewards)))
	}

	var treasury *contract.TreasuryContract
	if c.Treasury.Enabled {
		treasury, err = contract.NewTreasuryContract(c)
		if err != nil {
			return nil, errors.Wrap(err, "treasury client")
		}
	}

	return &ServerCtx{
		C:        c,
		Dao:      d,
		Ledger:   ledger,
		Cache:    rdb,
		Treasury: treasury,
	}, nil
}

// ParseAddress validates through the bridge helper, which accepts both
// checksummed and lowercase forms, then converts to the geth type the
// ledger uses.
func ParseAddress(s string) (common.Address, error) {
	if !bridgecommon.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("invalid address %q", s)
	}
	return common.Address(bridgecommon.HexToAddress(s)), nil
}

// logSink streams every ledger event into the structured log.
type logSink struct{}

func (logSink) HandleEvent(ev engine.Event) {
	fields := []zap.Field{
		zap.String("event", string(ev.Kind)),
		zap.Uint64("habit_id", ev.HabitID),
		zap.Uint64("pool_id", ev.PoolID),
		zap.String("user", ev.User.Hex()),
	}
	if ev.Amount != nil {
		fields = append(fields, zap.String("amount_wei", ev.Amount.String()))
	}
	if ev.Streak > 0 {
		fields = append(fields, zap.Uint64("streak", ev.Streak))
	}
	xzap.WithContext(context.Background()).Info("ledger event", fields...)
}
