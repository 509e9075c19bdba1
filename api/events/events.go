// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events serves the persisted audit trail.
package events

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakepool-labs/stakepool/api/restutil"
	"github.com/stakepool-labs/stakepool/eventdb"
	"github.com/stakepool-labs/stakepool/pool"
	"github.com/stakepool-labs/stakepool/stake"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

// New creates the events endpoint. limit caps the page size of any query.
func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db:    db,
		limit: limit,
	}
}

func (e *Events) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	query := req.URL.Query()
	filter := &eventdb.Filter{
		Kind:    pool.EventKind(query.Get("kind")),
		Account: stake.Identity(query.Get("account")),
		Options: &eventdb.Options{Limit: e.limit},
	}
	if v := query.Get("index"); v != "" {
		index, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "index"))
		}
		filter.Index = &index
	}
	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "offset"))
		}
		filter.Options.Offset = offset
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, restutil.BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit > e.limit {
			return nil, restutil.BadRequest(errors.Errorf("limit exceeds maximum of %d", e.limit))
		}
		filter.Options.Limit = limit
	}
	switch order := query.Get("order"); order {
	case "", "asc":
		filter.Order = eventdb.ASC
	case "desc":
		filter.Order = eventdb.DESC
	default:
		return nil, restutil.BadRequest(errors.Errorf("order: invalid value %q", order))
	}
	return filter, nil
}

func (e *Events) handleFilterEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*pool.Event{}
	}
	return restutil.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(e.handleFilterEvents))
}
