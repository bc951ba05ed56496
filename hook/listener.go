package hook

import "context"

// Listeners implement one capability interface per hook they care
// about; Registry.Register discovers the implemented set by type
// assertion. ClassNotify hooks return only an error, the rest return a
// Decision as well.

// PlayerMoveHandler receives player move events.
type PlayerMoveHandler interface {
	OnPlayerMove(ctx context.Context, e *PlayerMoveEvent) error
}

// TeleportHandler receives teleport events.
type TeleportHandler interface {
	OnTeleport(ctx context.Context, e *TeleportEvent) (Decision, error)
}

// LoginCheckHandler receives login check events.
type LoginCheckHandler interface {
	OnLoginCheck(ctx context.Context, e *LoginCheckEvent) (Decision, error)
}

// LoginHandler receives login events.
type LoginHandler interface {
	OnLogin(ctx context.Context, e *LoginEvent) error
}

// DisconnectHandler receives disconnect events.
type DisconnectHandler interface {
	OnDisconnect(ctx context.Context, e *DisconnectEvent) error
}

// ChatHandler receives chat events.
type ChatHandler interface {
	OnChat(ctx context.Context, e *ChatEvent) (Decision, error)
}

// CommandHandler receives player command events.
type CommandHandler interface {
	OnCommand(ctx context.Context, e *CommandEvent) (Decision, error)
}

// ConsoleCommandHandler receives console command events.
type ConsoleCommandHandler interface {
	OnConsoleCommand(ctx context.Context, e *ConsoleCommandEvent) (Decision, error)
}

// BanHandler receives ban events.
type BanHandler interface {
	OnBan(ctx context.Context, e *BanEvent) error
}

// IPBanHandler receives IP ban events.
type IPBanHandler interface {
	OnIPBan(ctx context.Context, e *IPBanEvent) error
}

// KickHandler receives kick events.
type KickHandler interface {
	OnKick(ctx context.Context, e *KickEvent) error
}

// BlockCreateHandler receives block create events.
type BlockCreateHandler interface {
	OnBlockCreate(ctx context.Context, e *BlockCreateEvent) (Decision, error)
}

// BlockDestroyHandler receives block destroy events.
type BlockDestroyHandler interface {
	OnBlockDestroy(ctx context.Context, e *BlockDestroyEvent) (Decision, error)
}

// BlockBreakHandler receives block break events.
type BlockBreakHandler interface {
	OnBlockBreak(ctx context.Context, e *BlockBreakEvent) (Decision, error)
}

// ArmSwingHandler receives arm swing events.
type ArmSwingHandler interface {
	OnArmSwing(ctx context.Context, e *ArmSwingEvent) error
}

// InventoryChangeHandler receives inventory change events.
type InventoryChangeHandler interface {
	OnInventoryChange(ctx context.Context, e *InventoryChangeEvent) (Decision, error)
}

// CraftInventoryChangeHandler receives craft inventory change events.
type CraftInventoryChangeHandler interface {
	OnCraftInventoryChange(ctx context.Context, e *CraftInventoryChangeEvent) (Decision, error)
}

// EquipmentChangeHandler receives equipment change events.
type EquipmentChangeHandler interface {
	OnEquipmentChange(ctx context.Context, e *EquipmentChangeEvent) (Decision, error)
}

// ItemDropHandler receives item drop events.
type ItemDropHandler interface {
	OnItemDrop(ctx context.Context, e *ItemDropEvent) (Decision, error)
}

// ComplexBlockChangeHandler receives complex block change events.
type ComplexBlockChangeHandler interface {
	OnComplexBlockChange(ctx context.Context, e *ComplexBlockChangeEvent) (Decision, error)
}

// SendComplexBlockHandler receives send complex block events.
type SendComplexBlockHandler interface {
	OnSendComplexBlock(ctx context.Context, e *SendComplexBlockEvent) (Decision, error)
}

// IgniteHandler receives ignite events.
type IgniteHandler interface {
	OnIgnite(ctx context.Context, e *IgniteEvent) (Decision, error)
}

// ExplodeHandler receives explode events.
type ExplodeHandler interface {
	OnExplode(ctx context.Context, e *ExplodeEvent) (Decision, error)
}

// FlowHandler receives fluid flow events.
type FlowHandler interface {
	OnFlow(ctx context.Context, e *FlowEvent) (Decision, error)
}

// MobSpawnHandler receives mob spawn events.
type MobSpawnHandler interface {
	OnMobSpawn(ctx context.Context, e *MobSpawnEvent) (Decision, error)
}

// HandlerFunc is the functional form used with Registry.Subscribe for a
// single kind; the event must be type-asserted to the kind's payload.
type HandlerFunc func(ctx context.Context, e Event) (Decision, error)

// handler is the uniform internal invocation shape all capability
// methods are adapted to.
type handler func(ctx context.Context, e Event) (Decision, error)

func notify(err error) (Decision, error) {
	return Allow(), err
}

// capabilityHandlers returns the adapted handler for every kind the
// listener implements.
func capabilityHandlers(listener any) map[Kind]handler {
	out := make(map[Kind]handler)

	if h, ok := listener.(PlayerMoveHandler); ok {
		out[KindPlayerMove] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnPlayerMove(ctx, e.(*PlayerMoveEvent)))
		}
	}
	if h, ok := listener.(TeleportHandler); ok {
		out[KindTeleport] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnTeleport(ctx, e.(*TeleportEvent))
		}
	}
	if h, ok := listener.(LoginCheckHandler); ok {
		out[KindLoginCheck] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnLoginCheck(ctx, e.(*LoginCheckEvent))
		}
	}
	if h, ok := listener.(LoginHandler); ok {
		out[KindLogin] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnLogin(ctx, e.(*LoginEvent)))
		}
	}
	if h, ok := listener.(DisconnectHandler); ok {
		out[KindDisconnect] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnDisconnect(ctx, e.(*DisconnectEvent)))
		}
	}
	if h, ok := listener.(ChatHandler); ok {
		out[KindChat] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnChat(ctx, e.(*ChatEvent))
		}
	}
	if h, ok := listener.(CommandHandler); ok {
		out[KindCommand] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnCommand(ctx, e.(*CommandEvent))
		}
	}
	if h, ok := listener.(ConsoleCommandHandler); ok {
		out[KindConsoleCommand] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnConsoleCommand(ctx, e.(*ConsoleCommandEvent))
		}
	}
	if h, ok := listener.(BanHandler); ok {
		out[KindBan] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnBan(ctx, e.(*BanEvent)))
		}
	}
	if h, ok := listener.(IPBanHandler); ok {
		out[KindIPBan] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnIPBan(ctx, e.(*IPBanEvent)))
		}
	}
	if h, ok := listener.(KickHandler); ok {
		out[KindKick] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnKick(ctx, e.(*KickEvent)))
		}
	}
	if h, ok := listener.(BlockCreateHandler); ok {
		out[KindBlockCreate] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnBlockCreate(ctx, e.(*BlockCreateEvent))
		}
	}
	if h, ok := listener.(BlockDestroyHandler); ok {
		out[KindBlockDestroy] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnBlockDestroy(ctx, e.(*BlockDestroyEvent))
		}
	}
	if h, ok := listener.(BlockBreakHandler); ok {
		out[KindBlockBreak] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnBlockBreak(ctx, e.(*BlockBreakEvent))
		}
	}
	if h, ok := listener.(ArmSwingHandler); ok {
		out[KindArmSwing] = func(ctx context.Context, e Event) (Decision, error) {
			return notify(h.OnArmSwing(ctx, e.(*ArmSwingEvent)))
		}
	}
	if h, ok := listener.(InventoryChangeHandler); ok {
		out[KindInventoryChange] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnInventoryChange(ctx, e.(*InventoryChangeEvent))
		}
	}
	if h, ok := listener.(CraftInventoryChangeHandler); ok {
		out[KindCraftInventoryChange] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnCraftInventoryChange(ctx, e.(*CraftInventoryChangeEvent))
		}
	}
	if h, ok := listener.(EquipmentChangeHandler); ok {
		out[KindEquipmentChange] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnEquipmentChange(ctx, e.(*EquipmentChangeEvent))
		}
	}
	if h, ok := listener.(ItemDropHandler); ok {
		out[KindItemDrop] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnItemDrop(ctx, e.(*ItemDropEvent))
		}
	}
	if h, ok := listener.(ComplexBlockChangeHandler); ok {
		out[KindComplexBlockChange] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnComplexBlockChange(ctx, e.(*ComplexBlockChangeEvent))
		}
	}
	if h, ok := listener.(SendComplexBlockHandler); ok {
		out[KindSendComplexBlock] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnSendComplexBlock(ctx, e.(*SendComplexBlockEvent))
		}
	}
	if h, ok := listener.(IgniteHandler); ok {
		out[KindIgnite] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnIgnite(ctx, e.(*IgniteEvent))
		}
	}
	if h, ok := listener.(ExplodeHandler); ok {
		out[KindExplode] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnExplode(ctx, e.(*ExplodeEvent))
		}
	}
	if h, ok := listener.(FlowHandler); ok {
		out[KindFlow] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnFlow(ctx, e.(*FlowEvent))
		}
	}
	if h, ok := listener.(MobSpawnHandler); ok {
		out[KindMobSpawn] = func(ctx context.Context, e Event) (Decision, error) {
			return h.OnMobSpawn(ctx, e.(*MobSpawnEvent))
		}
	}

	return out
}
