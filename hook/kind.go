package hook

import "fmt"

// Kind identifies one in-game extension point.
type Kind uint8

const (
	KindPlayerMove Kind = iota
	KindTeleport
	KindLoginCheck
	KindLogin
	KindDisconnect
	KindChat
	KindCommand
	KindConsoleCommand
	KindBan
	KindIPBan
	KindKick
	KindBlockCreate
	KindBlockDestroy
	KindBlockBreak
	KindArmSwing
	KindInventoryChange
	KindCraftInventoryChange
	KindEquipmentChange
	KindItemDrop
	KindComplexBlockChange
	KindSendComplexBlock
	KindIgnite
	KindExplode
	KindFlow
	KindMobSpawn

	kindCount // sentinel, keep last
)

// Class describes a kind's return contract.
type Class uint8

const (
	// ClassNotify hooks carry no veto; every listener always runs.
	ClassNotify Class = iota

	// ClassCancelable hooks let a listener suppress the default action;
	// the first cancel stops the chain.
	ClassCancelable

	// ClassFilter hooks produce a value instead of a veto: the first
	// listener returning a kick reason decides, later ones never run.
	ClassFilter
)

var kindNames = [kindCount]string{
	KindPlayerMove:           "player:move",
	KindTeleport:             "player:teleport",
	KindLoginCheck:           "player:login_check",
	KindLogin:                "player:login",
	KindDisconnect:           "player:disconnect",
	KindChat:                 "player:chat",
	KindCommand:              "player:command",
	KindConsoleCommand:       "server:command",
	KindBan:                  "player:ban",
	KindIPBan:                "player:ip_ban",
	KindKick:                 "player:kick",
	KindBlockCreate:          "block:create",
	KindBlockDestroy:         "block:destroy",
	KindBlockBreak:           "block:break",
	KindArmSwing:             "player:arm_swing",
	KindInventoryChange:      "inventory:change",
	KindCraftInventoryChange: "inventory:craft_change",
	KindEquipmentChange:      "inventory:equipment_change",
	KindItemDrop:             "item:drop",
	KindComplexBlockChange:   "block:complex_change",
	KindSendComplexBlock:     "block:complex_send",
	KindIgnite:               "block:ignite",
	KindExplode:              "block:explode",
	KindFlow:                 "block:flow",
	KindMobSpawn:             "mob:spawn",
}

var kindClasses = [kindCount]Class{
	KindPlayerMove:           ClassNotify,
	KindTeleport:             ClassCancelable,
	KindLoginCheck:           ClassFilter,
	KindLogin:                ClassNotify,
	KindDisconnect:           ClassNotify,
	KindChat:                 ClassCancelable,
	KindCommand:              ClassCancelable,
	KindConsoleCommand:       ClassCancelable,
	KindBan:                  ClassNotify,
	KindIPBan:                ClassNotify,
	KindKick:                 ClassNotify,
	KindBlockCreate:          ClassCancelable,
	KindBlockDestroy:         ClassCancelable,
	KindBlockBreak:           ClassCancelable,
	KindArmSwing:             ClassNotify,
	KindInventoryChange:      ClassCancelable,
	KindCraftInventoryChange: ClassCancelable,
	KindEquipmentChange:      ClassCancelable,
	KindItemDrop:             ClassCancelable,
	KindComplexBlockChange:   ClassCancelable,
	KindSendComplexBlock:     ClassCancelable,
	KindIgnite:               ClassCancelable,
	KindExplode:              ClassCancelable,
	KindFlow:                 ClassCancelable,
	KindMobSpawn:             ClassCancelable,
}

// String returns the kind's wire name, e.g. "player:chat".
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Class returns the kind's return contract.
func (k Kind) Class() Class {
	if k >= kindCount {
		return ClassNotify
	}
	return kindClasses[k]
}

// Valid reports whether k names a defined kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Kinds returns all defined kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindFromName resolves a wire name back to its Kind.
func KindFromName(name string) (Kind, bool) {
	for k := Kind(0); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}
