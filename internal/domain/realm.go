package domain

// ConnectedRealm es un cluster de servidores que comparten una misma casa de
// subastas. Se resuelve una vez desde el slug y se trata como clave estable
// durante la vida del proceso.
type ConnectedRealm struct {
	ID   int64
	Slug string
	Name string // nombre del primer realm constituyente, o el slug si no hay nombre localizado
}
