package demo

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/nexus/event"
)

// Script is an optional Lua hook into the demo. A script registers
// callbacks for named events and may emit events back onto the bus:
//
//	nexus.on("damage", function(e)
//	    if e.target == "player" then
//	        nexus.emit("log", { text = "ouch: " .. e.amount })
//	    end
//	end)
//
// All callbacks run on the driver goroutine during Process, so the Lua
// state needs no locking. Events emitted from a callback are delivered on
// the following pass.
type Script struct {
	L      *lua.LState
	bus    *event.Bus
	sender *event.Sender
	subs   *event.SubscriptionSet
}

// LoadScript runs the script file and wires its registrations onto bus.
func LoadScript(path string, bus *event.Bus) (*Script, error) {
	L := lua.NewState()

	s := &Script{
		L:      L,
		bus:    bus,
		sender: event.NewSender(bus, "script"),
		subs:   event.NewSubscriptionSet(bus),
	}

	mod := L.NewTable()
	L.SetField(mod, "on", L.NewFunction(s.luaOn))
	L.SetField(mod, "emit", L.NewFunction(s.luaEmit))
	L.SetGlobal("nexus", mod)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// Close unsubscribes the script's handlers and shuts down the Lua state.
func (s *Script) Close() {
	s.subs.CancelAll()
	s.L.Close()
}

// luaOn implements nexus.on(name, fn).
func (s *Script) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	switch name {
	case "tick":
		s.subs.Add(event.SubscribeFunc(s.bus, func(ctx context.Context, t Tick) error {
			tbl := L.NewTable()
			L.SetField(tbl, "frame", lua.LNumber(t.Frame))
			return s.call(fn, tbl)
		}))
	case "damage":
		s.subs.Add(event.SubscribeFunc(s.bus, func(ctx context.Context, d Damage) error {
			tbl := L.NewTable()
			L.SetField(tbl, "target", lua.LString(d.Target))
			L.SetField(tbl, "amount", lua.LNumber(d.Amount))
			L.SetField(tbl, "source", lua.LString(d.Source))
			return s.call(fn, tbl)
		}))
	case "spawn":
		s.subs.Add(event.SubscribeFunc(s.bus, func(ctx context.Context, e EnemySpawned) error {
			tbl := L.NewTable()
			L.SetField(tbl, "name", lua.LString(e.Name))
			L.SetField(tbl, "hp", lua.LNumber(e.HP))
			return s.call(fn, tbl)
		}))
	default:
		L.ArgError(1, "unknown event name: "+name)
	}
	return 0
}

// luaEmit implements nexus.emit(name, table).
func (s *Script) luaEmit(L *lua.LState) int {
	name := L.CheckString(1)
	tbl := L.CheckTable(2)

	var err error
	switch name {
	case "damage":
		err = s.sender.Emit(Damage{
			Target: lua.LVAsString(tbl.RawGetString("target")),
			Amount: int(lua.LVAsNumber(tbl.RawGetString("amount"))),
			Source: "script",
		})
	case "log":
		err = s.sender.Emit(LogLine{
			Text: lua.LVAsString(tbl.RawGetString("text")),
		})
	default:
		L.ArgError(1, "unknown event name: "+name)
	}
	if err != nil {
		L.RaiseError("emit failed: %v", err)
	}
	return 0
}

// call invokes a Lua callback with one argument, protected so a script
// error is reported as a handler failure instead of a panic.
func (s *Script) call(fn *lua.LFunction, arg lua.LValue) error {
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, arg); err != nil {
		return fmt.Errorf("script handler: %w", err)
	}
	return nil
}
