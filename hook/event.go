package hook

import "time"

// Event is one occurrence of an in-game action offered to listeners.
// Events are ephemeral: built right before dispatch, discarded after.
type Event interface {
	// Kind returns the hook kind this event belongs to.
	Kind() Kind
}

// BaseEvent carries the fields shared by every event; embed it in
// payload structs.
type BaseEvent struct {
	kind       Kind
	occurredAt time.Time
}

// NewEvent creates the embeddable base for a kind.
func NewEvent(kind Kind) BaseEvent {
	return BaseEvent{
		kind:       kind,
		occurredAt: time.Now(),
	}
}

// Kind returns the hook kind.
func (e BaseEvent) Kind() Kind {
	return e.kind
}

// OccurredAt returns the event creation time.
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// PlayerMoveEvent fires when a player moves from one block to another.
type PlayerMoveEvent struct {
	BaseEvent
	Player Player   `json:"player"`
	From   Location `json:"from"`
	To     Location `json:"to"`
}

// NewPlayerMoveEvent creates a player move event.
func NewPlayerMoveEvent(player Player, from, to Location) *PlayerMoveEvent {
	return &PlayerMoveEvent{BaseEvent: NewEvent(KindPlayerMove), Player: player, From: from, To: to}
}

// TeleportEvent fires before a player teleports; cancel to block it.
type TeleportEvent struct {
	BaseEvent
	Player Player   `json:"player"`
	From   Location `json:"from"`
	To     Location `json:"to"`
}

// NewTeleportEvent creates a teleport event.
func NewTeleportEvent(player Player, from, to Location) *TeleportEvent {
	return &TeleportEvent{BaseEvent: NewEvent(KindTeleport), Player: player, From: from, To: to}
}

// LoginCheckEvent fires early in the login flow, before the player
// object exists. A listener answering KickWith rejects the connection.
type LoginCheckEvent struct {
	BaseEvent
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// NewLoginCheckEvent creates a login check event.
func NewLoginCheckEvent(name, address string) *LoginCheckEvent {
	return &LoginCheckEvent{BaseEvent: NewEvent(KindLoginCheck), Name: name, Address: address}
}

// LoginEvent fires late in the login flow once the player is in-world.
type LoginEvent struct {
	BaseEvent
	Player Player `json:"player"`
}

// NewLoginEvent creates a login event.
func NewLoginEvent(player Player) *LoginEvent {
	return &LoginEvent{BaseEvent: NewEvent(KindLogin), Player: player}
}

// DisconnectEvent fires when a player disconnects.
type DisconnectEvent struct {
	BaseEvent
	Player Player `json:"player"`
}

// NewDisconnectEvent creates a disconnect event.
func NewDisconnectEvent(player Player) *DisconnectEvent {
	return &DisconnectEvent{BaseEvent: NewEvent(KindDisconnect), Player: player}
}

// ChatEvent fires when a player talks; cancel to drop the message.
type ChatEvent struct {
	BaseEvent
	Player  Player `json:"player"`
	Message string `json:"message"`
}

// NewChatEvent creates a chat event.
func NewChatEvent(player Player, message string) *ChatEvent {
	return &ChatEvent{BaseEvent: NewEvent(KindChat), Player: player, Message: message}
}

// CommandEvent fires before a player command is parsed; cancel to
// swallow it.
type CommandEvent struct {
	BaseEvent
	Player Player   `json:"player"`
	Args   []string `json:"args"` // Args[0] is the command itself
}

// NewCommandEvent creates a command event.
func NewCommandEvent(player Player, args []string) *CommandEvent {
	return &CommandEvent{BaseEvent: NewEvent(KindCommand), Player: player, Args: args}
}

// ConsoleCommandEvent fires before a console command is parsed; cancel
// to swallow it.
type ConsoleCommandEvent struct {
	BaseEvent
	Args []string `json:"args"`
}

// NewConsoleCommandEvent creates a console command event.
func NewConsoleCommandEvent(args []string) *ConsoleCommandEvent {
	return &ConsoleCommandEvent{BaseEvent: NewEvent(KindConsoleCommand), Args: args}
}

// BanEvent fires when a moderator bans a player.
type BanEvent struct {
	BaseEvent
	Moderator Player `json:"moderator"`
	Player    Player `json:"player"`
	Reason    string `json:"reason"`
}

// NewBanEvent creates a ban event.
func NewBanEvent(moderator, player Player, reason string) *BanEvent {
	return &BanEvent{BaseEvent: NewEvent(KindBan), Moderator: moderator, Player: player, Reason: reason}
}

// IPBanEvent fires when a moderator IP-bans a player.
type IPBanEvent struct {
	BaseEvent
	Moderator Player `json:"moderator"`
	Player    Player `json:"player"`
	Reason    string `json:"reason"`
}

// NewIPBanEvent creates an IP ban event.
func NewIPBanEvent(moderator, player Player, reason string) *IPBanEvent {
	return &IPBanEvent{BaseEvent: NewEvent(KindIPBan), Moderator: moderator, Player: player, Reason: reason}
}

// KickEvent fires when a moderator kicks a player.
type KickEvent struct {
	BaseEvent
	Moderator Player `json:"moderator"`
	Player    Player `json:"player"`
	Reason    string `json:"reason"`
}

// NewKickEvent creates a kick event.
func NewKickEvent(moderator, player Player, reason string) *KickEvent {
	return &KickEvent{BaseEvent: NewEvent(KindKick), Moderator: moderator, Player: player, Reason: reason}
}

// BlockCreateEvent fires on right click with a placeable item; cancel
// to block placement.
type BlockCreateEvent struct {
	BaseEvent
	Player       Player `json:"player"`
	BlockPlaced  Block  `json:"block_placed"`
	BlockClicked Block  `json:"block_clicked"`
	ItemInHand   int    `json:"item_in_hand"`
}

// NewBlockCreateEvent creates a block create event.
func NewBlockCreateEvent(player Player, placed, clicked Block, itemInHand int) *BlockCreateEvent {
	return &BlockCreateEvent{
		BaseEvent:    NewEvent(KindBlockCreate),
		Player:       player,
		BlockPlaced:  placed,
		BlockClicked: clicked,
		ItemInHand:   itemInHand,
	}
}

// BlockDestroyEvent fires when a player left-clicks a block; cancel to
// protect it.
type BlockDestroyEvent struct {
	BaseEvent
	Player Player `json:"player"`
	Block  Block  `json:"block"`
}

// NewBlockDestroyEvent creates a block destroy event.
func NewBlockDestroyEvent(player Player, block Block) *BlockDestroyEvent {
	return &BlockDestroyEvent{BaseEvent: NewEvent(KindBlockDestroy), Player: player, Block: block}
}

// BlockBreakEvent fires when the block actually breaks.
type BlockBreakEvent struct {
	BaseEvent
	Player Player `json:"player"`
	Block  Block  `json:"block"`
}

// NewBlockBreakEvent creates a block break event.
func NewBlockBreakEvent(player Player, block Block) *BlockBreakEvent {
	return &BlockBreakEvent{BaseEvent: NewEvent(KindBlockBreak), Player: player, Block: block}
}

// ArmSwingEvent fires on every left click, block or not. Listeners must
// not block here.
type ArmSwingEvent struct {
	BaseEvent
	Player Player `json:"player"`
}

// NewArmSwingEvent creates an arm swing event.
func NewArmSwingEvent(player Player) *ArmSwingEvent {
	return &ArmSwingEvent{BaseEvent: NewEvent(KindArmSwing), Player: player}
}

// InventoryChangeEvent fires when a player's inventory changes; cancel
// to revert.
type InventoryChangeEvent struct {
	BaseEvent
	Player Player `json:"player"`
}

// NewInventoryChangeEvent creates an inventory change event.
func NewInventoryChangeEvent(player Player) *InventoryChangeEvent {
	return &InventoryChangeEvent{BaseEvent: NewEvent(KindInventoryChange), Player: player}
}

// CraftInventoryChangeEvent fires for the 2x2 crafting grid inside the
// player inventory, not the 3x3 crafting table.
type CraftInventoryChangeEvent struct {
	BaseEvent
	Player Player `json:"player"`
}

// NewCraftInventoryChangeEvent creates a craft inventory change event.
func NewCraftInventoryChangeEvent(player Player) *CraftInventoryChangeEvent {
	return &CraftInventoryChangeEvent{BaseEvent: NewEvent(KindCraftInventoryChange), Player: player}
}

// EquipmentChangeEvent fires when a player's equipment changes; cancel
// to revert.
type EquipmentChangeEvent struct {
	BaseEvent
	Player Player `json:"player"`
}

// NewEquipmentChangeEvent creates an equipment change event.
func NewEquipmentChangeEvent(player Player) *EquipmentChangeEvent {
	return &EquipmentChangeEvent{BaseEvent: NewEvent(KindEquipmentChange), Player: player}
}

// ItemDropEvent fires when a player drops an item; cancel to keep the
// drop from spawning.
type ItemDropEvent struct {
	BaseEvent
	Player Player `json:"player"`
	Item   Item   `json:"item"`
}

// NewItemDropEvent creates an item drop event.
func NewItemDropEvent(player Player, item Item) *ItemDropEvent {
	return &ItemDropEvent{BaseEvent: NewEvent(KindItemDrop), Player: player, Item: item}
}

// ComplexBlockChangeEvent fires when a sign, chest or furnace changes;
// cancel to revert.
type ComplexBlockChangeEvent struct {
	BaseEvent
	Player Player `json:"player"`
	Block  Block  `json:"block"`
}

// NewComplexBlockChangeEvent creates a complex block change event.
func NewComplexBlockChangeEvent(player Player, block Block) *ComplexBlockChangeEvent {
	return &ComplexBlockChangeEvent{BaseEvent: NewEvent(KindComplexBlockChange), Player: player, Block: block}
}

// SendComplexBlockEvent fires when a sign, chest or furnace is sent to a
// player; cancel to send it empty.
type SendComplexBlockEvent struct {
	BaseEvent
	Player Player `json:"player"`
	Block  Block  `json:"block"`
}

// NewSendComplexBlockEvent creates a send complex block event.
func NewSendComplexBlockEvent(player Player, block Block) *SendComplexBlockEvent {
	return &SendComplexBlockEvent{BaseEvent: NewEvent(KindSendComplexBlock), Player: player, Block: block}
}

// IgniteEvent fires when lava, a lighter or fire spread wants to ignite
// a block; cancel to keep it from catching.
type IgniteEvent struct {
	BaseEvent
	Block  Block   `json:"block"`
	Player *Player `json:"player,omitempty"` // nil for natural spread
}

// NewIgniteEvent creates an ignite event.
func NewIgniteEvent(block Block, player *Player) *IgniteEvent {
	return &IgniteEvent{BaseEvent: NewEvent(KindIgnite), Block: block, Player: player}
}

// ExplodeEvent fires when dynamite or a creeper triggers; cancel to
// suppress the explosion.
type ExplodeEvent struct {
	BaseEvent
	Block Block `json:"block"`
}

// NewExplodeEvent creates an explode event.
func NewExplodeEvent(block Block) *ExplodeEvent {
	return &ExplodeEvent{BaseEvent: NewEvent(KindExplode), Block: block}
}

// FlowEvent fires when water or lava wants to flow into a block; cancel
// to stop the flow.
type FlowEvent struct {
	BaseEvent
	From Block `json:"from"` // block type identifies the fluid
	To   Block `json:"to"`
}

// NewFlowEvent creates a flow event.
func NewFlowEvent(from, to Block) *FlowEvent {
	return &FlowEvent{BaseEvent: NewEvent(KindFlow), From: from, To: to}
}

// MobSpawnEvent fires before a mob spawns; cancel to suppress the
// spawn.
type MobSpawnEvent struct {
	BaseEvent
	Mob Mob `json:"mob"`
}

// NewMobSpawnEvent creates a mob spawn event.
func NewMobSpawnEvent(mob Mob) *MobSpawnEvent {
	return &MobSpawnEvent{BaseEvent: NewEvent(KindMobSpawn), Mob: mob}
}
