package i18n

// catalog - переводы интерфейса. Английский текст служит ключом,
// поэтому для en каталог пуст.
var catalog = map[string]map[string]string{
	"en": {},
	"es": {
		"Microblog":            "Microblog",
		"Welcome to Microblog": "Bienvenido a Microblog",
		"Home":                 "Inicio",
		"Explore":              "Explorar",
		"Profile":              "Perfil",
		"Login":                "Ingresar",
		"Logout":               "Salir",
		"Register":             "Registrarse",
		"Sign In":              "Ingresar",
		"Username":             "Nombre de usuario",
		"Email":                "Email",
		"Password":             "Contraseña",
		"Repeat Password":      "Repetir Contraseña",
		"Remember Me":          "Recordarme",
		"Submit":               "Enviar",
		"New User?":            "¿Usuario Nuevo?",
		"Click to Register!":   "¡Haz click aquí para registrarte!",
		"Forgot Your Password?": "¿Te olvidaste tu contraseña?",
		"Click to Reset It":     "Haz click aquí para pedir una nueva",
		"Reset Password":        "Nueva Contraseña",
		"Request Password Reset": "Pedir una nueva contraseña",
		"Reset Your Password":    "Nueva Contraseña",
		"About me":               "Acerca de mí",
		"Edit Profile":           "Editar Perfil",
		"Edit your profile":      "Editar tu perfil",
		"Say something":          "Dí algo",
		"Hi, {0}!":               "¡Hola, {0}!",
		"Newer posts":            "Artículos siguientes",
		"Older posts":            "Artículos previos",
		"Last seen on":           "Última visita",
		"{0} followers":          "{0} seguidores",
		"{0} following":          "siguiendo a {0}",
		"Follow":                 "Seguir",
		"Unfollow":               "Dejar de seguir",
		"said":                   "dijo",
		"Translate":              "Traducir",
		"User":                   "Usuario",
		"Back":                   "Atrás",
		"File Not Found":         "Página No Encontrada",
		"An unexpected error has occurred": "Ha ocurrido un error inesperado",
		"The administrator has been notified. Sorry for the inconvenience!": "El administrador ha sido notificado. ¡Lamentamos la inconveniencia!",

		"Invalid username or password":       "Nombre de usuario o contraseña inválidos",
		"The form has expired. Please try again.": "El formulario ha expirado. Por favor inténtalo de nuevo.",
		"Resource not found":                 "Recurso no encontrado",
		"Resource already exists":            "El recurso ya existe",
		"Please log in to access this page.": "Por favor ingrese para acceder a esta página.",
		"Congratulations, you are now a registered user!":              "¡Felicitaciones, ya eres un usuario registrado!",
		"Check your email for the instructions to reset your password": "Busca en tu email las instrucciones para crear una nueva contraseña",
		"Your password has been reset.":         "Tu contraseña ha sido cambiada.",
		"Your post is now live!":                "¡Tu artículo ha sido publicado!",
		"Your changes have been saved.":         "Tus cambios han sido salvados.",
		"Please use a different username.":      "Por favor use un nombre de usuario diferente.",
		"Please use a different email address.": "Por favor use una dirección de email diferente.",
		"User {0} not found.":                   "El usuario {0} no ha sido encontrado.",
		"You cannot follow yourself!":           "¡No te puedes seguir a tí mismo!",
		"You are following {0}!":                "¡Ahora estás siguiendo a {0}!",
		"You cannot unfollow yourself!":         "¡No te puedes dejar de seguir a tí mismo!",
		"You are not following {0}.":            "No estás siguiendo a {0}.",
		"The CSRF token is missing or invalid.": "El token CSRF falta o no es válido.",
		"Too many requests, please try again later.":         "Demasiadas solicitudes, intente más tarde.",
		"Error: the translation service is not configured.": "Error: el servicio de traducciones no está configurado.",
		"Error: the translation service failed.":            "Error: el servicio de traducciones ha fallado.",
	},
}
