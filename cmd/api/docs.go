package main

// @title           Loja de Colchões API
// @version         1.0
// @description     API de clientes, estoque, pedidos e crediário de uma loja de colchões

// @contact.name   Suporte
// @contact.email  suporte@lojacolchoes.com.br

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
