package models

// New returns an empty record of the named entity type. Used by stores that
// persist records generically and need a concrete type to decode into.
func New(entity EntityType) (Record, bool) {
	switch entity {
	case EntityCattle:
		return &Cattle{}, true
	case EntityPregnancy:
		return &PregnancyRecord{}, true
	case EntityCalving:
		return &CalvingRecord{}, true
	case EntityHealth:
		return &HealthRecord{}, true
	case EntityTask:
		return &TaskRecord{}, true
	case EntityContact:
		return &Contact{}, true
	case EntityBreed:
		return &Breed{}, true
	case EntityMedication:
		return &Medication{}, true
	case EntityProductionPath:
		return &ProductionPath{}, true
	case EntityCattleStage:
		return &CattleStage{}, true
	case EntityTreatmentPlan:
		return &TreatmentPlan{}, true
	case EntityVeterinarian:
		return &Veterinarian{}, true
	case EntityProcessor:
		return &Processor{}, true
	case EntityHealthCondition:
		return &HealthConditionType{}, true
	default:
		return nil, false
	}
}

// AllEntities lists every syncable entity type in a stable order.
func AllEntities() []EntityType {
	return []EntityType{
		EntityCattle,
		EntityPregnancy,
		EntityCalving,
		EntityHealth,
		EntityTask,
		EntityContact,
		EntityBreed,
		EntityMedication,
		EntityProductionPath,
		EntityCattleStage,
		EntityTreatmentPlan,
		EntityVeterinarian,
		EntityProcessor,
		EntityHealthCondition,
	}
}
