package component

// Script runs a tengo script once per frame on behalf of its entity.
type Script struct {
	Path string
}

var ScriptComponent = NewComponent[Script]("script")
