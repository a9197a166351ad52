package email

const (
	subjectStatusUpdateFmt   = "Tu solicitud para %s fue actualizada"
	subjectSLABreachFmt      = "Solicitud sin respuesta: %s"
	subjectLeaseConvertedFmt = "Contrato firmado para %s"
)
