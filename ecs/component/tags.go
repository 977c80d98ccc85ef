package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type BossTag struct{}

var BossTagComponent = NewComponent[BossTag]()

// Disabled stops input, AI and movement for an entity without removing it.
type Disabled struct{}

var DisabledComponent = NewComponent[Disabled]()

// PrefabRef names the prefab an entity was built from.
type PrefabRef struct {
	Name string
}

var PrefabRefComponent = NewComponent[PrefabRef]()
