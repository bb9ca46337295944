/*
Copyright 2020 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package link propagates ranges along links between axes.
//
// An axis with LinkTo set mirrors the axis it links to, which may itself be
// linked, and so on.  Following the links from an axis gives its chain; the
// last axis of the chain is the canonical source whose planner decides the
// range of every axis on the chain.  Chains come from user configuration, so
// they may dangle, loop or go on for too long.  Every walk is bounded and
// every problem is recorded as an anomaly rather than returned.
package link

import (
	"errors"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/chartkit/chart/axis"
)

// MaxHops caps the number of links followed from any one axis.
const MaxHops = 100

// Registry finds axes by their global ID.  Errors should be *axis.Anomaly
// values saying why the axis couldn't be found.
type Registry interface {
	LookupAxis(id axis.ID) (*axis.Axis, error)
}

// Mode selects what ResolveRange propagates.
type Mode int

const (
	// PropagateHardBounds copies the effective hard bounds of the canonical
	// source to the rest of its chain, before any usage is collected.
	PropagateHardBounds Mode = iota
	// PropagateRange resolves the canonical source and copies its final
	// range (and scale) to the rest of its chain, placing their ticks.
	PropagateRange
)

func (m Mode) String() string {
	if m == PropagateHardBounds {
		return "hard-bounds"
	}
	return "range"
}

// Chain follows the links from ax, returning every axis visited, ax first.
// When the walk stops for any reason other than reaching an unlinked axis,
// the returned anomaly says why; the chain is still the usable prefix up to
// that point, so its last axis acts as the canonical source.
func Chain(reg Registry, ax *axis.Axis) ([]*axis.Axis, *axis.Anomaly) {
	chain := []*axis.Axis{ax}
	visited := sets.NewString(ax.ID().String())

	cur := ax
	for hops := 0; cur.Linked(); hops++ {
		if hops >= MaxHops {
			return chain, axis.NewAnomaly(axis.LinkDepthExceeded, ax.ID(),
				"Axis %s is linked through more than %d axes. Ignoring further links.", ax.ID(), MaxHops)
		}
		target := *cur.LinkTo
		if visited.Has(target.String()) {
			return chain, axis.NewAnomaly(axis.LinkCycle, cur.ID(),
				"Axis %s is linked to axis %s, which links back to it.", cur.ID(), target)
		}

		next, err := reg.LookupAxis(target)
		if err != nil {
			return chain, asAnomaly(err, cur.ID(), target)
		}
		visited.Insert(target.String())
		chain = append(chain, next)
		cur = next
	}
	return chain, nil
}

// asAnomaly attributes a lookup failure to the axis that holds the link.
func asAnomaly(err error, from, target axis.ID) *axis.Anomaly {
	var anomaly *axis.Anomaly
	if errors.As(err, &anomaly) {
		cp := *anomaly
		cp.Axis = from
		return &cp
	}
	return axis.NewAnomaly(axis.AxisNotFound, from, "Axis linked to axis %s which doesn't exist: %v", target, err)
}

// Source returns the canonical source of ax: the last axis on its chain.
func Source(reg Registry, ax *axis.Axis, log *axis.Log) *axis.Axis {
	chain, anomaly := Chain(reg, ax)
	log.Add(anomaly)
	return chain[len(chain)-1]
}

// BackPropagate widens the usage of every axis downstream of ax to cover the
// usage of ax.  Values are added through IncludePoint, so a log axis
// downstream of a linear one only picks up the positive part.
func BackPropagate(reg Registry, ax *axis.Axis, log *axis.Log) {
	min, max, ok := ax.Usage()
	if !ok || !ax.Linked() {
		return
	}
	chain, anomaly := Chain(reg, ax)
	log.Add(anomaly)
	for _, target := range chain[1:] {
		if target.Resolved() {
			break
		}
		target.IncludePoint(min)
		target.IncludePoint(max)
	}
}

// ResolveRange propagates along the chain of ax in the given mode.
//
// In PropagateHardBounds mode, every axis of the chain that hasn't started
// collecting usage takes the effective hard bounds of the canonical source.
//
// In PropagateRange mode, the canonical source is resolved (and ticked) if it
// isn't already, then each axis back up the chain copies the range of the
// axis it links to and places its own ticks.  The walk stops at the first
// axis that is already resolved: everything it links to was resolved by the
// same earlier call.  An axis resolved earlier in the chain stands in for the
// canonical source, since it holds the same range.
func ResolveRange(reg Registry, ax *axis.Axis, mode Mode, log *axis.Log) {
	chain, anomaly := Chain(reg, ax)
	log.Add(anomaly)
	source := chain[len(chain)-1]

	switch mode {
	case PropagateHardBounds:
		min, max := source.EffectiveHardBounds()
		source.BeginUsage()
		for i := len(chain) - 2; i >= 0; i-- {
			chain[i].AdoptHardBounds(min, max)
		}
	case PropagateRange:
		end := len(chain) - 1
		for i := 1; i < end; i++ {
			if chain[i].Resolved() {
				end = i
				break
			}
		}
		chain[end].Resolve(log)
		chain[end].FinalizeTicks(log)
		for i := end - 1; i >= 0; i-- {
			link := chain[i]
			if link.Resolved() {
				break
			}
			link.AdoptRange(chain[i+1])
			link.FinalizeTicks(log)
		}
	}
}
