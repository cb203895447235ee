// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/launchpool/launchpool/metrics"
	"github.com/launchpool/launchpool/reverts"
)

var (
	metricOps          = metrics.LazyLoadCounterVec("pool_ops_count", []string{"op", "result"})
	metricStages       = metrics.LazyLoadCounterVec("pool_stage_changes_count", []string{"stage"})
	metricChunkEntries = metrics.LazyLoadHistogramVec("pool_chunk_entries", []string{"op"}, metrics.BucketChunk)
)

func observeOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = reverts.KindOf(err).String()
	}
	metricOps().AddWithLabel(1, map[string]string{"op": op, "result": result})
}
