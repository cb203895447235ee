// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package factory

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/launchpool/launchpool/cache"
	"github.com/launchpool/launchpool/kv"
	"github.com/launchpool/launchpool/launch"
	"github.com/launchpool/launchpool/log"
	"github.com/launchpool/launchpool/metrics"
	"github.com/launchpool/launchpool/pool"
	"github.com/launchpool/launchpool/reverts"
)

var (
	logger = log.WithContext("pkg", "factory")

	metricPoolsCreated = metrics.LazyLoadCounter("factory_pools_created_count")
	metricCacheHitMiss = metrics.LazyLoadGaugeVec("factory_pool_cache_hit_miss", []string{"event"})
)

const (
	poolBucket  = kv.Bucket("p")
	indexBucket = kv.Bucket("i")
	nonceBucket = kv.Bucket("n")
)

// EventPoolCreated is the name of the creation record event.
const EventPoolCreated = "PoolCreated"

// CreationRecord is emitted once per created pool.
type CreationRecord struct {
	Sponsor    launch.Address `json:"sponsor"`
	Pool       launch.Address `json:"pool"`
	Metadata   string         `json:"metadata"`
	ConfigHash launch.Bytes32 `json:"configHash"`
}

func (*CreationRecord) Name() string { return EventPoolCreated }

// TokenRegistry resolves token decimals.
type TokenRegistry interface {
	Decimals(token launch.Address) (uint8, error)
}

// Factory creates pools and keeps track of them.
// Changes are buffered until Commit, or dropped by Discard.
type Factory struct {
	tokens  TokenRegistry
	db      kv.Store
	pools   kv.Store
	index   kv.Store
	nonces  kv.Store
	cache   *cache.LRU[launch.Address, *pool.Pool]
	count   uint64
	dirty   map[launch.Address]*pool.Pool
	created []launch.Address
	pending map[launch.Address]uint64
}

// New creates a factory over the store.
func New(store kv.Store, tokens TokenRegistry, cacheSize int) (*Factory, error) {
	lru, err := cache.NewLRU[launch.Address, *pool.Pool](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "factory cache")
	}
	f := &Factory{
		tokens:  tokens,
		db:      store,
		pools:   poolBucket.NewStore(store),
		index:   indexBucket.NewStore(store),
		nonces:  nonceBucket.NewStore(store),
		cache:   lru,
		dirty:   make(map[launch.Address]*pool.Pool),
		pending: make(map[launch.Address]uint64),
	}

	iter := f.index.Iterate(kv.Range{})
	for iter.Next() {
		f.count++
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "count pools")
	}
	return f, nil
}

func (f *Factory) nonce(sponsor launch.Address) (uint64, error) {
	if n, ok := f.pending[sponsor]; ok {
		return n, nil
	}
	raw, err := f.nonces.Get(sponsor.Bytes())
	if err != nil {
		if f.nonces.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "get nonce")
	}
	return binary.BigEndian.Uint64(raw), nil
}

// CreateLaunchPool validates the configuration and creates a new pool owned by sponsor.
func (f *Factory) CreateLaunchPool(
	now uint64,
	sponsor launch.Address,
	tokens []launch.Address,
	params pool.Params,
	metadata string,
	sharesToken launch.Address,
	referralBps uint16,
	referral launch.Address,
	opts ...pool.Option,
) (*pool.Pool, *CreationRecord, error) {
	cfg := &pool.Config{
		Sponsor:     sponsor,
		Tokens:      pool.NewTokenSet(),
		Metadata:    metadata,
		SharesToken: sharesToken,
		Referral:    referral,
		ReferralBps: referralBps,
		Abortable:   true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	for _, token := range tokens {
		decimals, err := f.tokens.Decimals(token)
		if err != nil {
			if reverts.IsRevertErr(err) {
				return nil, nil, reverts.Newf(reverts.InvalidConfiguration, "unknown token %v", token)
			}
			return nil, nil, err
		}
		if !cfg.Tokens.Add(token, decimals) {
			return nil, nil, reverts.Newf(reverts.InvalidConfiguration, "duplicate token %v", token)
		}
	}
	if !sharesToken.IsZero() {
		decimals, err := f.tokens.Decimals(sharesToken)
		if err != nil {
			if reverts.IsRevertErr(err) {
				return nil, nil, reverts.Newf(reverts.InvalidConfiguration, "unknown shares token %v", sharesToken)
			}
			return nil, nil, err
		}
		cfg.SharesDecimals = decimals
	}
	if err := cfg.ApplyParams(params, now); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	nonce, err := f.nonce(sponsor)
	if err != nil {
		return nil, nil, err
	}
	addr := launch.CreatePoolAddress(sponsor, nonce)

	p := pool.New(addr, cfg, now)
	f.pending[sponsor] = nonce + 1
	f.dirty[addr] = p
	f.created = append(f.created, addr)

	metricPoolsCreated().Add(1)
	logger.Info("pool created", "pool", addr, "sponsor", sponsor, "tokens", len(tokens), "metadata", metadata)

	return p, &CreationRecord{
		Sponsor:    sponsor,
		Pool:       addr,
		Metadata:   metadata,
		ConfigHash: cfg.Hash(),
	}, nil
}

func (f *Factory) load(addr launch.Address) (*pool.Pool, error) {
	if p, ok := f.dirty[addr]; ok {
		return p, nil
	}
	defer f.reportCache()
	return f.cache.GetOrLoad(addr, func(addr launch.Address) (*pool.Pool, error) {
		raw, err := f.pools.Get(addr.Bytes())
		if err != nil {
			if f.pools.IsNotFound(err) {
				return nil, reverts.ErrNoSuchPool
			}
			return nil, errors.Wrap(err, "get pool")
		}
		var p pool.Pool
		if err := rlp.DecodeBytes(raw, &p); err != nil {
			return nil, errors.Wrap(err, "decode pool")
		}
		return &p, nil
	})
}

// reportCache publishes the pool cache counters when the hit rate moved.
func (f *Factory) reportCache() bool {
	changed, hit, miss := f.cache.Stats()
	if !changed {
		return false
	}
	metricCacheHitMiss().SetWithLabel(hit, map[string]string{"event": "hit"})
	metricCacheHitMiss().SetWithLabel(miss, map[string]string{"event": "miss"})
	logger.Debug("pool cache", "hit", hit, "miss", miss, "size", f.cache.Len())
	return true
}

// Pool returns the pool for reading.
func (f *Factory) Pool(addr launch.Address) (*pool.Pool, error) {
	return f.load(addr)
}

// Modify returns the pool and marks it to be written on Commit.
func (f *Factory) Modify(addr launch.Address) (*pool.Pool, error) {
	p, err := f.load(addr)
	if err != nil {
		return nil, err
	}
	f.dirty[addr] = p
	return p, nil
}

// Count returns the number of pools created, including uncommitted ones.
func (f *Factory) Count() uint64 {
	return f.count + uint64(len(f.created))
}

// Pools lists pool handles in creation order, from offset, at most limit.
func (f *Factory) Pools(offset, limit uint64) ([]launch.Address, error) {
	var list []launch.Address
	if offset < f.count {
		var start [8]byte
		binary.BigEndian.PutUint64(start[:], offset)
		iter := f.index.Iterate(kv.Range{Start: start[:]})
		for iter.Next() && uint64(len(list)) < limit {
			list = append(list, launch.BytesToAddress(iter.Value()))
		}
		iter.Release()
		if err := iter.Error(); err != nil {
			return nil, errors.Wrap(err, "iterate pools")
		}
	}
	for i, addr := range f.created {
		if uint64(len(list)) >= limit {
			break
		}
		if f.count+uint64(i) >= offset {
			list = append(list, addr)
		}
	}
	return list, nil
}

// Commit persists every created or modified pool in one batch.
func (f *Factory) Commit() error {
	if len(f.dirty) == 0 && len(f.pending) == 0 {
		return nil
	}
	batch := f.db.NewBatch()
	pools, index, nonces := poolBucket.WrapBatch(batch), indexBucket.WrapBatch(batch), nonceBucket.WrapBatch(batch)

	for addr, p := range f.dirty {
		data, err := rlp.EncodeToBytes(p)
		if err != nil {
			return errors.Wrap(err, "encode pool")
		}
		if err := pools.Put(addr.Bytes(), data); err != nil {
			return errors.Wrap(err, "put pool")
		}
	}
	for i, addr := range f.created {
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], f.count+uint64(i))
		if err := index.Put(key[:], addr.Bytes()); err != nil {
			return errors.Wrap(err, "put index")
		}
	}
	for sponsor, n := range f.pending {
		var val [8]byte
		binary.BigEndian.PutUint64(val[:], n)
		if err := nonces.Put(sponsor.Bytes(), val[:]); err != nil {
			return errors.Wrap(err, "put nonce")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit factory")
	}

	for addr, p := range f.dirty {
		f.cache.Add(addr, p)
	}
	f.count += uint64(len(f.created))
	logger.Debug("committed", "pools", len(f.dirty), "created", len(f.created))
	f.reset()
	return nil
}

// Discard drops every uncommitted change.
func (f *Factory) Discard() {
	for addr := range f.dirty {
		f.cache.Remove(addr)
	}
	f.reset()
}

func (f *Factory) reset() {
	f.dirty = make(map[launch.Address]*pool.Pool)
	f.created = nil
	f.pending = make(map[launch.Address]uint64)
}
