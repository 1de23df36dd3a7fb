package glyphspin

import (
	"reflect"
)

type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

// Map calls m for every entity that has A. Returning false stops the walk.
// Components listed in optionals may be missing, in which case m receives nil.
func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	idA := componentIdOf[A](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		colA, ok := column[A](arch, idA, opt)
		if !ok {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, colA.at(row)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	idA, idB := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		colA, okA := column[A](arch, idA, opt)
		colB, okB := column[B](arch, idB, opt)
		if !okA || !okB {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, colA.at(row), colB.at(row)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	idA, idB, idC := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs)
	opt := identifyOptionals(q.ecs, optionals...)

	for _, arch := range q.ecs.archetypes {
		colA, okA := column[A](arch, idA, opt)
		colB, okB := column[B](arch, idB, opt)
		colC, okC := column[C](arch, idC, opt)
		if !okA || !okB || !okC {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, colA.at(row), colB.at(row), colC.at(row)) {
				return
			}
		}
	}
}

// Count returns how many entities have A.
func (q Query1[A]) Count() int {
	n := 0
	q.Map(func(EntityId, *A) bool {
		n++
		return true
	})
	return n
}

type queryColumn[T any] struct {
	data    []T
	missing bool
}

func (c queryColumn[T]) at(r row) *T {
	if c.missing {
		return nil
	}
	return &c.data[r]
}

func column[T any](arch *archetype, id componentId, optionals set[componentId]) (queryColumn[T], bool) {
	if data, ok := arch.componentData[id]; ok {
		return queryColumn[T]{data: data.([]T)}, true
	}
	if _, ok := optionals[id]; ok {
		return queryColumn[T]{missing: true}, true
	}
	return queryColumn[T]{}, false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		componentType, _ := componentValue(c)
		res[ecs.getComponentId(componentType)] = struct{}{}
	}
	return res
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[T]())
}
